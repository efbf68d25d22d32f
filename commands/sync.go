package commands

import (
  "context"
  "log"

  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/models"
  "github.com/tfriedel/tweethoarder/repositories"
  "github.com/tfriedel/tweethoarder/repositories/sync"
)

type SyncHandler struct {
  ApiContext *common.ApiContext
  Repository *sync.SyncRepository
}

func NewSyncCommand() *cli.Command {
  var h SyncHandler
  return &cli.Command{
    Name:  "sync",
    Usage: "",
    Flags: []cli.Flag{
      &cli.IntFlag{
        Name:    "count",
        Aliases: []string{"c"},
        Value:   100,
      },
      &cli.BoolFlag{
        Name:  "all",
        Value: false,
      },
      &cli.BoolFlag{
        Name:  "full",
        Value: false,
      },
      &cli.BoolFlag{
        Name:  "with-threads",
        Value: false,
      },
      &cli.BoolFlag{
        Name:  "store-raw",
        Value: false,
      },
      &cli.IntFlag{
        Name:  "hours",
        Value: 24,
      },
    },
    Before: func(c *cli.Context) error {
      h = SyncHandler{
        ApiContext: &common.ApiContext{
          Db:  common.NewDB(),
          Rdb: common.NewRedis(),
          Ctx: context.Background(),
        },
      }
      h.ApiContext.Db.AutoMigrate(
        &models.Tweet{},
        &models.Collection{},
        &models.Checkpoint{},
        &models.ThreadContext{},
      )
      tweets := &repositories.TweetsRepository{
        Db: h.ApiContext.Db,
      }
      queryIds := &repositories.QueryIdsRepository{
        Rdb: h.ApiContext.Rdb,
        Ctx: h.ApiContext.Ctx,
      }
      h.Repository = &sync.SyncRepository{
        Db:     h.ApiContext.Db,
        Ctx:    h.ApiContext.Ctx,
        Tweets: tweets,
        Checkpoints: &repositories.CheckpointsRepository{
          Db: h.ApiContext.Db,
        },
        QueryIds:    queryIds,
        Credentials: &repositories.CredentialsRepository{},
        Threads: &sync.ThreadsRepository{
          Db:       h.ApiContext.Db,
          Ctx:      h.ApiContext.Ctx,
          Tweets:   tweets,
          QueryIds: queryIds,
        },
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "likes",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.run(c, config.COLLECTION_LIKE, h.Repository.SyncLikes)
        },
      },
      {
        Name:  "bookmarks",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.run(c, config.COLLECTION_BOOKMARK, h.Repository.SyncBookmarks)
        },
      },
      {
        Name:  "bookmark-folder",
        Usage: "",
        Action: func(c *cli.Context) error {
          folderID := c.Args().Get(0)
          folderName := c.Args().Get(1)
          if folderID == "" || folderName == "" {
            return cli.Exit("folder id and name required", 1)
          }
          return h.run(c, config.COLLECTION_BOOKMARK, func(opts *sync.SyncOptions) (*sync.SyncResult, error) {
            return h.Repository.SyncBookmarkFolder(folderID, folderName, opts)
          })
        },
      },
      {
        Name:  "tweets",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.run(c, config.COLLECTION_TWEET, h.Repository.SyncTweets)
        },
      },
      {
        Name:  "reposts",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.run(c, config.COLLECTION_REPOST, h.Repository.SyncReposts)
        },
      },
      {
        Name:  "replies",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.run(c, config.COLLECTION_REPLY, h.Repository.SyncReplies)
        },
      },
      {
        Name:  "feed",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.run(c, config.COLLECTION_FEED, h.Repository.SyncFeed)
        },
      },
      {
        Name:  "all",
        Usage: "",
        Flags: []cli.Flag{
          &cli.StringSliceFlag{
            Name: "skip",
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.runAll(c); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *SyncHandler) options(c *cli.Context) *sync.SyncOptions {
  opts := &sync.SyncOptions{
    Count:       c.Int("count"),
    Full:        c.Bool("full"),
    WithThreads: c.Bool("with-threads"),
    StoreRaw:    c.Bool("store-raw"),
    Hours:       c.Int("hours"),
  }
  if c.Bool("all") || c.Bool("full") {
    opts.Count = 0
  }
  return opts
}

func (h *SyncHandler) run(
  c *cli.Context,
  collectionType string,
  runSync func(*sync.SyncOptions) (*sync.SyncResult, error),
) error {
  opts := h.options(c)
  result, err := runSync(opts)
  if err != nil {
    return cli.Exit(err.Error(), 1)
  }
  log.Println(
    "synced", collectionType, result.SyncedCount,
    "tweets", result.TweetCount,
    "reposts", result.RepostCount,
    "replies", result.ReplyCount,
    "skipped", result.SkippedCount,
  )
  return nil
}

func (h *SyncHandler) runAll(c *cli.Context) error {
  include := map[string]bool{
    config.COLLECTION_LIKE:     true,
    config.COLLECTION_BOOKMARK: true,
    config.COLLECTION_TWEET:    true,
    config.COLLECTION_REPOST:   true,
    config.COLLECTION_REPLY:    true,
    config.COLLECTION_FEED:     true,
  }
  for _, collectionType := range c.StringSlice("skip") {
    include[collectionType] = false
  }
  return h.Repository.SyncAll(include, h.options(c))
}
