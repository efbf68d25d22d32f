package exports

import (
  "encoding/json"
  "strings"
)

type expandedUrl struct {
  Url         string `json:"url"`
  ExpandedUrl string `json:"expanded_url"`
}

// ExpandUrls replaces t.co shortlinks in the tweet text with the expanded
// targets recorded at sync time.
func ExpandUrls(text string, urls json.RawMessage) string {
  if len(urls) == 0 {
    return text
  }
  var expanded []*expandedUrl
  if err := json.Unmarshal(urls, &expanded); err != nil {
    return text
  }
  for _, u := range expanded {
    if u.Url != "" && u.ExpandedUrl != "" {
      text = strings.ReplaceAll(text, u.Url, u.ExpandedUrl)
    }
  }
  return text
}

var markdownReplacer = strings.NewReplacer(
  `\`, `\\`,
  `*`, `\*`,
  `_`, `\_`,
  `[`, `\[`,
  `]`, `\]`,
  "`", "\\`",
  `#`, `\#`,
)

func EscapeMarkdown(text string) string {
  return markdownReplacer.Replace(text)
}
