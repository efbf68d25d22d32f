package exports

import (
  "encoding/csv"
  "encoding/json"
  "fmt"
  "io"

  "gorm.io/gorm"

  "github.com/tfriedel/tweethoarder/models"
  "github.com/tfriedel/tweethoarder/repositories"
)

type ExportsRepository struct {
  Db     *gorm.DB
  Tweets *repositories.TweetsRepository
}

type ExportTweet struct {
  ID                string          `json:"id"`
  Text              string          `json:"text"`
  AuthorID          string          `json:"author_id"`
  AuthorUsername    string          `json:"author_username"`
  AuthorDisplayName string          `json:"author_display_name,omitempty"`
  AuthorAvatarUrl   string          `json:"author_avatar_url,omitempty"`
  CreatedAt         string          `json:"created_at"`
  ConversationID    string          `json:"conversation_id,omitempty"`
  InReplyToTweetID  string          `json:"in_reply_to_tweet_id,omitempty"`
  QuotedTweetID     string          `json:"quoted_tweet_id,omitempty"`
  IsRetweet         bool            `json:"is_retweet"`
  RetweeterUsername string          `json:"retweeter_username,omitempty"`
  ReplyCount        int             `json:"reply_count"`
  RetweetCount      int             `json:"retweet_count"`
  LikeCount         int             `json:"like_count"`
  QuoteCount        int             `json:"quote_count"`
  Urls              json.RawMessage `json:"urls,omitempty"`
  Media             json.RawMessage `json:"media,omitempty"`
  Hashtags          json.RawMessage `json:"hashtags,omitempty"`
  Url               string          `json:"url"`
}

func NewExportTweet(tweet *models.Tweet) *ExportTweet {
  return &ExportTweet{
    ID:                tweet.ID,
    Text:              tweet.Text,
    AuthorID:          tweet.AuthorID,
    AuthorUsername:    tweet.AuthorUsername,
    AuthorDisplayName: tweet.AuthorDisplayName,
    AuthorAvatarUrl:   tweet.AuthorAvatarUrl,
    CreatedAt:         tweet.PostedAt,
    ConversationID:    tweet.ConversationID,
    InReplyToTweetID:  tweet.InReplyToTweetID,
    QuotedTweetID:     tweet.QuotedTweetID,
    IsRetweet:         tweet.IsRetweet,
    RetweeterUsername: tweet.RetweeterUsername,
    ReplyCount:        tweet.ReplyCount,
    RetweetCount:      tweet.RetweetCount,
    LikeCount:         tweet.LikeCount,
    QuoteCount:        tweet.QuoteCount,
    Urls:              json.RawMessage(tweet.Urls),
    Media:             json.RawMessage(tweet.Media),
    Hashtags:          json.RawMessage(tweet.Hashtags),
    Url:               fmt.Sprintf("https://x.com/%v/status/%v", tweet.AuthorUsername, tweet.ID),
  }
}

func (r *ExportsRepository) collect(collectionType string) []*ExportTweet {
  var items []*ExportTweet
  for _, tweet := range r.Tweets.Collection(collectionType, 1, 0) {
    items = append(items, NewExportTweet(tweet))
  }
  if items == nil {
    items = []*ExportTweet{}
  }
  return items
}

func (r *ExportsRepository) Json(collectionType string, w io.Writer) (err error) {
  encoder := json.NewEncoder(w)
  encoder.SetIndent("", "  ")
  err = encoder.Encode(map[string]interface{}{
    "collection": collectionType,
    "tweets":     r.collect(collectionType),
  })
  return
}

func (r *ExportsRepository) Csv(collectionType string, w io.Writer) (err error) {
  writer := csv.NewWriter(w)
  writer.Write([]string{
    "id",
    "created_at",
    "author_username",
    "text",
    "reply_count",
    "retweet_count",
    "like_count",
    "quote_count",
    "url",
  })
  for _, tweet := range r.collect(collectionType) {
    writer.Write([]string{
      tweet.ID,
      tweet.CreatedAt,
      tweet.AuthorUsername,
      tweet.Text,
      fmt.Sprintf("%d", tweet.ReplyCount),
      fmt.Sprintf("%d", tweet.RetweetCount),
      fmt.Sprintf("%d", tweet.LikeCount),
      fmt.Sprintf("%d", tweet.QuoteCount),
      tweet.Url,
    })
  }
  writer.Flush()
  err = writer.Error()
  return
}
