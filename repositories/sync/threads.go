package sync

import (
  "context"
  "log"

  "gorm.io/gorm"

  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
)

type ThreadResult struct {
  TweetCount int
}

// ThreadsRepository backfills conversation context around a stored tweet via
// the TweetDetail endpoint.
type ThreadsRepository struct {
  Db        *gorm.DB
  Ctx       context.Context
  Tweets    *repositories.TweetsRepository
  QueryIds  *repositories.QueryIdsRepository
  Transport *Transport
  ApiBase   string
}

func (r *ThreadsRepository) FetchThread(tweetID string) (result *ThreadResult, err error) {
  result = &ThreadResult{}
  if r.ApiBase == "" {
    r.ApiBase = config.TWITTER_API_BASE
  }
  ctx := r.Ctx
  if ctx == nil {
    ctx = context.Background()
  }

  queryID, err := r.QueryIds.Get("TweetDetail")
  if err != nil {
    return
  }

  pageUrl := BuildTweetDetailUrl(r.ApiBase, queryID, tweetID)
  refresh := func() (string, error) {
    if refreshErr := r.QueryIds.Refresh(); refreshErr != nil {
      log.Println("query id refresh failed", refreshErr)
    }
    return r.QueryIds.Get("TweetDetail")
  }
  rebuild := func(newID string) string {
    return BuildTweetDetailUrl(r.ApiBase, newID, tweetID)
  }
  body, err := r.Transport.Fetch(ctx, pageUrl, refresh, rebuild)
  if err != nil {
    return
  }

  depth := 0
  for _, raw := range ParseTweetDetailResponse(body) {
    tweet := ExtractTweet(raw, false)
    if tweet == nil {
      continue
    }
    if err = r.Tweets.Save(tweet); err != nil {
      return
    }
    if tweet.InReplyToTweetID != "" {
      r.Tweets.SaveThreadContext(tweet.ID, tweet.InReplyToTweetID, depth)
    }
    depth++
    result.TweetCount++
  }

  return
}
