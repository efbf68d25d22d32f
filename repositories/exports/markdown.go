package exports

import (
  "fmt"
  "io"
  "strings"
)

func (r *ExportsRepository) Markdown(collectionType string, w io.Writer) (err error) {
  var b strings.Builder
  b.WriteString(fmt.Sprintf("# %v\n\n", collectionTitle(collectionType)))
  for _, tweet := range r.collect(collectionType) {
    author := tweet.AuthorUsername
    if tweet.AuthorDisplayName != "" {
      author = fmt.Sprintf("%v (@%v)", tweet.AuthorDisplayName, tweet.AuthorUsername)
    } else {
      author = fmt.Sprintf("@%v", author)
    }
    b.WriteString(fmt.Sprintf("## %v\n\n", author))
    if tweet.IsRetweet && tweet.RetweeterUsername != "" {
      b.WriteString(fmt.Sprintf("Reposted by @%v\n\n", tweet.RetweeterUsername))
    }
    text := EscapeMarkdown(ExpandUrls(tweet.Text, tweet.Urls))
    b.WriteString(text)
    b.WriteString("\n\n")
    b.WriteString(fmt.Sprintf(
      "%v · %v replies · %v reposts · %v likes · [permalink](%v)\n\n---\n\n",
      tweet.CreatedAt,
      tweet.ReplyCount,
      tweet.RetweetCount,
      tweet.LikeCount,
      tweet.Url,
    ))
  }
  _, err = io.WriteString(w, b.String())
  return
}

func collectionTitle(collectionType string) string {
  switch collectionType {
  case "like":
    return "Likes"
  case "bookmark":
    return "Bookmarks"
  case "tweet":
    return "Tweets"
  case "repost":
    return "Reposts"
  case "reply":
    return "Replies"
  case "feed":
    return "Feed"
  }
  return collectionType
}
