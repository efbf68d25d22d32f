package exports

import (
  "encoding/json"
  "testing"

  "github.com/stretchr/testify/assert"
)

func TestExpandUrls(t *testing.T) {
  urls := json.RawMessage(`[{"url":"https://t.co/abc","expanded_url":"https://example.com/post"}]`)

  assert.Equal(t,
    "see https://example.com/post now",
    ExpandUrls("see https://t.co/abc now", urls),
  )
}

func TestExpandUrlsNoUrls(t *testing.T) {
  assert.Equal(t, "plain text", ExpandUrls("plain text", nil))
  assert.Equal(t, "plain text", ExpandUrls("plain text", json.RawMessage(`not json`)))
}

func TestEscapeMarkdown(t *testing.T) {
  assert.Equal(t, `\*bold\* \_em\_ \[link\]`, EscapeMarkdown(`*bold* _em_ [link]`))
  assert.Equal(t, `\# heading`, EscapeMarkdown(`# heading`))
  assert.Equal(t, "\\`code\\`", EscapeMarkdown("`code`"))
}
