package config

const (
  TWITTER_API_BASE = "https://x.com/i/api/graphql"

  INITIAL_SORT_INDEX = "9000000000000000000"

  QUERY_IDS_TTL_SECONDS = 24 * 60 * 60

  REDIS_KEY_QUERY_IDS   = "tweethoarder:queryids"
  REDIS_KEY_SYNC_MUTEX  = "tweethoarder:sync:mutex"
  NATS_TWEETS_CREATE    = "tweethoarder.tweets.create"
  ASYNQ_THREADS_FETCH   = "threads:fetch"
)

const (
  COLLECTION_LIKE     = "like"
  COLLECTION_BOOKMARK = "bookmark"
  COLLECTION_TWEET    = "tweet"
  COLLECTION_REPOST   = "repost"
  COLLECTION_REPLY    = "reply"
  COLLECTION_FEED     = "feed"
)

var DISCOVERY_PAGES = []string{
  "https://x.com/?lang=en",
  "https://x.com/explore",
  "https://x.com/notifications",
  "https://x.com/settings/profile",
}

var FALLBACK_QUERY_IDS = map[string]string{
  "Bookmarks":              "RV1g3b8n_SGOHwkqKYSCFw",
  "BookmarkFolderTimeline": "KJIQpsvxrTfRIlbaRIySHQ",
  "Likes":                  "JR2gceKucIKcVNB_9JkhsA",
  "TweetDetail":            "97JF30KziU00483E_8elBA",
  "SearchTimeline":         "M1jEez78PEfVfbQLvlWMvQ",
  "UserArticlesTweets":     "8zBy9h4L90aDL02RsBcCFg",
  "UserTweets":             "Wms1GvIiHXAPBaCr9KblaA",
  "UserTweetsAndReplies":   "_P1zJA2kS9W1PLHKdThsrg",
  "HomeLatestTimeline":     "U0cdisy7QFIoTfu3-Okw0A",
  "Following":              "BEkNpEt5pNETESoqMsTEGA",
  "Followers":              "kuFUYP9eV1FPoEy4N-pi7w",
}

func TargetOperations() []string {
  operations := make([]string, 0, len(FALLBACK_QUERY_IDS))
  for name := range FALLBACK_QUERY_IDS {
    operations = append(operations, name)
  }
  return operations
}
