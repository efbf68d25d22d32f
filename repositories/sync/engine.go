package sync

import (
  "context"
  "log"
  "time"

  "github.com/hibiken/asynq"
  "github.com/tidwall/gjson"
  "gorm.io/gorm"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/models"
  "github.com/tfriedel/tweethoarder/queue/asynq/jobs"
  "github.com/tfriedel/tweethoarder/repositories"
)

type SyncOptions struct {
  Count       int
  Full        bool
  WithThreads bool
  StoreRaw    bool
  Hours       int
}

type SyncResult struct {
  SyncedCount  int
  TweetCount   int
  RepostCount  int
  ReplyCount   int
  SkippedCount int
}

type SyncRepository struct {
  Db          *gorm.DB
  Ctx         context.Context
  Tweets      *repositories.TweetsRepository
  Checkpoints *repositories.CheckpointsRepository
  QueryIds    *repositories.QueryIdsRepository
  Credentials *repositories.CredentialsRepository
  Threads     *ThreadsRepository
  Asynq       *asynq.Client
  Transport   *Transport
  ApiBase     string

  userID string
}

type timelineSource struct {
  operation  string
  dupStop    bool
  hoursBound bool
  folder     string
  buildUrl   func(apiBase string, queryID string, userID string, cursor string) string
  parse      func(body []byte) ([]*TimelineEntry, string)
  match      func(raw gjson.Result, tweet *models.Tweet, userID string) bool
  backfill   func(r *SyncRepository, tweet *models.Tweet) bool
}

func (r *SyncRepository) prepare() (err error) {
  if r.userID != "" {
    return
  }
  credentials, err := r.Credentials.Resolve()
  if err != nil {
    return
  }
  r.userID = credentials.UserID
  if r.Transport == nil {
    r.Transport = &Transport{
      Client:  common.NewHttpClient(15 * time.Second),
      Headers: credentials.Headers(),
    }
  }
  if r.ApiBase == "" {
    r.ApiBase = config.TWITTER_API_BASE
  }
  if r.Ctx == nil {
    r.Ctx = context.Background()
  }
  return
}

func selfThreadBackfill(r *SyncRepository, tweet *models.Tweet) bool {
  return IsSelfThread(tweet)
}

func missingParentBackfill(r *SyncRepository, tweet *models.Tweet) bool {
  return tweet.InReplyToTweetID != "" && !r.Tweets.IsExists(tweet.InReplyToTweetID)
}

func beforeCutoff(postedAt string, cutoff time.Time) bool {
  parsed, err := time.Parse(time.RFC3339, postedAt)
  if err != nil {
    return false
  }
  return parsed.Before(cutoff)
}

// syncTimeline drives one collection through its pages. The checkpoint is
// written after every fully processed page and before the next fetch, so a
// failure costs at most the in-flight page. Duplicate-stop relies on pages
// arriving newest-first: the first already-stored item marks the boundary of
// the previous sync.
func (r *SyncRepository) syncTimeline(
  collectionType string,
  source *timelineSource,
  opts *SyncOptions,
) (result *SyncResult, err error) {
  result = &SyncResult{}
  if opts == nil {
    opts = &SyncOptions{}
  }
  if err = r.prepare(); err != nil {
    return
  }

  queryID, err := r.QueryIds.Get(source.operation)
  if err != nil {
    return
  }

  checkpoint, err := r.Checkpoints.Load(collectionType)
  if err != nil {
    return
  }
  cursor := ""
  lastTweetID := ""
  if checkpoint != nil {
    cursor = checkpoint.Cursor
    lastTweetID = checkpoint.LastTweetID
    log.Println("resuming sync", collectionType, checkpoint.LastTweetID)
  }
  generator := SortIndexFromCheckpointOrDb(r.Checkpoints, r.Tweets, collectionType)

  var cutoff time.Time
  if source.hoursBound {
    hours := opts.Hours
    if hours == 0 {
      hours = 24
    }
    cutoff = time.Now().Add(-time.Duration(hours) * time.Hour)
  }

  for {
    pageUrl := source.buildUrl(r.ApiBase, queryID, r.userID, cursor)
    refresh := func() (string, error) {
      if refreshErr := r.QueryIds.Refresh(); refreshErr != nil {
        log.Println("query id refresh failed", refreshErr)
      }
      return r.QueryIds.Get(source.operation)
    }
    rebuild := func(newID string) string {
      queryID = newID
      return source.buildUrl(r.ApiBase, queryID, r.userID, cursor)
    }
    body, fetchErr := r.Transport.Fetch(r.Ctx, pageUrl, refresh, rebuild)
    if fetchErr != nil {
      err = fetchErr
      return
    }

    entries, nextCursor := source.parse(body)
    if len(entries) == 0 {
      break
    }

    stop := false
    for _, entry := range entries {
      tweet := ExtractTweet(entry.Tweet, opts.StoreRaw)
      if tweet == nil {
        result.SkippedCount++
        continue
      }
      if source.match != nil && !source.match(entry.Tweet, tweet, r.userID) {
        continue
      }
      if source.hoursBound && beforeCutoff(tweet.PostedAt, cutoff) {
        stop = true
        break
      }
      if source.dupStop && !opts.Full && r.Tweets.IsInCollection(tweet.ID, collectionType) {
        stop = true
        break
      }
      if err = r.Tweets.Save(tweet); err != nil {
        return
      }
      if quoted := ExtractQuoted(entry.Tweet, opts.StoreRaw); quoted != nil {
        if err = r.Tweets.Save(quoted); err != nil {
          return
        }
      }
      if err = r.Tweets.AddToCollection(tweet.ID, collectionType, generator.Next(), source.folder, tweet.ConversationID); err != nil {
        return
      }
      lastTweetID = tweet.ID
      result.SyncedCount++
      if tweet.IsRetweet {
        result.RepostCount++
      } else if tweet.InReplyToTweetID != "" {
        result.ReplyCount++
      } else {
        result.TweetCount++
      }
      if opts.WithThreads && source.backfill != nil && source.backfill(r, tweet) {
        r.backfillThread(tweet.ID)
      }
      // Hours-bounded sources run to their cutoff, not to a count.
      if opts.Count > 0 && !source.hoursBound && result.SyncedCount >= opts.Count {
        stop = true
        break
      }
    }

    if stop || nextCursor == "" {
      break
    }
    if err = r.Checkpoints.Save(collectionType, nextCursor, lastTweetID, generator.Current()); err != nil {
      return
    }
    cursor = nextCursor
  }

  err = r.Checkpoints.Clear(collectionType)
  return
}

// backfillThread is fire-and-forget: a failed backfill never rolls back items
// the page loop already committed.
func (r *SyncRepository) backfillThread(tweetID string) {
  if r.Asynq != nil {
    task, taskErr := (&jobs.Threads{}).Fetch(tweetID)
    if taskErr == nil {
      if _, enqueueErr := r.Asynq.Enqueue(task); enqueueErr == nil {
        return
      }
    }
  }
  if r.Threads == nil {
    return
  }
  if r.Threads.Transport == nil {
    r.Threads.Transport = r.Transport
  }
  if _, threadErr := r.Threads.FetchThread(tweetID); threadErr != nil {
    log.Println("thread fetch failed", tweetID, threadErr)
  }
}

func (r *SyncRepository) SyncLikes(opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation: "Likes",
    dupStop:   true,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildLikesUrl(apiBase, queryID, userID, cursor)
    },
    parse:    ParseLikesResponse,
    backfill: selfThreadBackfill,
  }
  return r.syncTimeline(config.COLLECTION_LIKE, source, opts)
}

func (r *SyncRepository) SyncBookmarks(opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation: "Bookmarks",
    dupStop:   true,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildBookmarksUrl(apiBase, queryID, cursor)
    },
    parse:    ParseBookmarksResponse,
    backfill: selfThreadBackfill,
  }
  return r.syncTimeline(config.COLLECTION_BOOKMARK, source, opts)
}

// SyncBookmarkFolder pulls one bookmark folder timeline; members land in the
// bookmark collection tagged with the folder name.
func (r *SyncRepository) SyncBookmarkFolder(folderID string, folderName string, opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation: "BookmarkFolderTimeline",
    dupStop:   true,
    folder:    folderName,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildBookmarkFolderUrl(apiBase, queryID, folderID, cursor)
    },
    parse:    ParseBookmarkFolderResponse,
    backfill: selfThreadBackfill,
  }
  return r.syncTimeline(config.COLLECTION_BOOKMARK, source, opts)
}

func (r *SyncRepository) SyncTweets(opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation: "UserTweets",
    dupStop:   true,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildUserTweetsUrl(apiBase, queryID, userID, cursor)
    },
    parse: ParseUserTweetsResponse,
    match: func(raw gjson.Result, tweet *models.Tweet, userID string) bool {
      return !IsRepost(raw) && !IsReply(raw) && tweet.AuthorID == userID
    },
    backfill: selfThreadBackfill,
  }
  return r.syncTimeline(config.COLLECTION_TWEET, source, opts)
}

func (r *SyncRepository) SyncReposts(opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation: "UserTweets",
    dupStop:   true,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildUserTweetsUrl(apiBase, queryID, userID, cursor)
    },
    parse: ParseUserTweetsResponse,
    match: func(raw gjson.Result, tweet *models.Tweet, userID string) bool {
      return IsRepost(raw)
    },
  }
  return r.syncTimeline(config.COLLECTION_REPOST, source, opts)
}

func (r *SyncRepository) SyncReplies(opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation: "UserTweetsAndReplies",
    dupStop:   true,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildUserTweetsAndRepliesUrl(apiBase, queryID, userID, cursor)
    },
    parse: ParseUserTweetsResponse,
    match: func(raw gjson.Result, tweet *models.Tweet, userID string) bool {
      return IsReply(raw) && !IsRepost(raw) && tweet.AuthorID == userID
    },
    backfill: missingParentBackfill,
  }
  return r.syncTimeline(config.COLLECTION_REPLY, source, opts)
}

func (r *SyncRepository) SyncFeed(opts *SyncOptions) (*SyncResult, error) {
  source := &timelineSource{
    operation:  "HomeLatestTimeline",
    hoursBound: true,
    buildUrl: func(apiBase string, queryID string, userID string, cursor string) string {
      return BuildHomeTimelineUrl(apiBase, queryID, cursor)
    },
    parse: ParseHomeTimelineResponse,
  }
  return r.syncTimeline(config.COLLECTION_FEED, source, opts)
}

func (r *SyncRepository) SyncAll(include map[string]bool, opts *SyncOptions) (err error) {
  collections := []struct {
    collectionType string
    run            func(*SyncOptions) (*SyncResult, error)
  }{
    {config.COLLECTION_LIKE, r.SyncLikes},
    {config.COLLECTION_BOOKMARK, r.SyncBookmarks},
    {config.COLLECTION_TWEET, r.SyncTweets},
    {config.COLLECTION_REPOST, r.SyncReposts},
    {config.COLLECTION_REPLY, r.SyncReplies},
    {config.COLLECTION_FEED, r.SyncFeed},
  }
  for _, collection := range collections {
    if !include[collection.collectionType] {
      continue
    }
    result, runErr := collection.run(opts)
    if runErr != nil {
      log.Println("sync failed", collection.collectionType, runErr)
      if err == nil {
        err = runErr
      }
      continue
    }
    log.Println("synced", collection.collectionType, result.SyncedCount)
  }
  return
}
