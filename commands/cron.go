package commands

import (
  "context"
  "log"
  "time"

  "github.com/robfig/cron/v3"
  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
  "github.com/tfriedel/tweethoarder/repositories/sync"
)

type CronHandler struct {
  ApiContext *common.ApiContext
  Repository *sync.SyncRepository
}

func NewCronCommand() *cli.Command {
  var h CronHandler
  return &cli.Command{
    Name:  "cron",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = CronHandler{
        ApiContext: &common.ApiContext{
          Db:  common.NewDB(),
          Rdb: common.NewRedis(),
          Ctx: context.Background(),
        },
      }
      tweets := &repositories.TweetsRepository{
        Db:   h.ApiContext.Db,
        Nats: common.NewNats(),
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
        Asynq: common.NewAsynqClient(),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      schedule := common.GetEnvString("CRON_SYNC_SCHEDULE")
      if schedule == "" {
        schedule = "@every 6h"
      }
      runner := cron.New()
      if _, err := runner.AddFunc(schedule, h.syncAll); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      log.Println("cron starting...", schedule)
      runner.Run()
      return nil
    },
  }
}

func (h *CronHandler) syncAll() {
  mutex := common.NewMutex(
    h.ApiContext.Rdb,
    h.ApiContext.Ctx,
    config.REDIS_KEY_SYNC_MUTEX,
  )
  if !mutex.Lock(2 * time.Hour) {
    log.Println("sync already running")
    return
  }
  defer mutex.Unlock()

  include := map[string]bool{
    config.COLLECTION_LIKE:     true,
    config.COLLECTION_BOOKMARK: true,
    config.COLLECTION_TWEET:    true,
    config.COLLECTION_REPOST:   true,
    config.COLLECTION_REPLY:    true,
    config.COLLECTION_FEED:     true,
  }
  opts := &sync.SyncOptions{
    WithThreads: true,
  }
  if err := h.Repository.SyncAll(include, opts); err != nil {
    log.Println("scheduled sync failed", err)
  }
}
