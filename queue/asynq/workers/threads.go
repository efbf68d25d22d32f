package workers

import (
  "context"
  "encoding/json"
  "log"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "gorm.io/gorm"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/queue/asynq/jobs"
  "github.com/tfriedel/tweethoarder/repositories"
  syncRepositories "github.com/tfriedel/tweethoarder/repositories/sync"
)

type Threads struct {
  Db         *gorm.DB
  Rdb        *redis.Client
  Ctx        context.Context
  Repository *syncRepositories.ThreadsRepository
}

func NewThreads(db *gorm.DB, rdb *redis.Client, ctx context.Context) *Threads {
  h := &Threads{
    Db:  db,
    Rdb: rdb,
    Ctx: ctx,
  }
  h.Repository = &syncRepositories.ThreadsRepository{
    Db:  db,
    Ctx: ctx,
    Tweets: &repositories.TweetsRepository{
      Db: db,
    },
    QueryIds: &repositories.QueryIdsRepository{
      Rdb: rdb,
      Ctx: ctx,
    },
  }
  return h
}

func (h *Threads) Fetch(ctx context.Context, t *asynq.Task) error {
  var payload jobs.FetchPayload
  json.Unmarshal(t.Payload(), &payload)

  if h.Repository.Transport == nil {
    credentials, err := (&repositories.CredentialsRepository{}).Resolve()
    if err != nil {
      log.Println("credentials missing", err)
      return nil
    }
    h.Repository.Transport = &syncRepositories.Transport{
      Client:  common.NewHttpClient(15 * time.Second),
      Headers: credentials.Headers(),
    }
  }

  result, err := h.Repository.FetchThread(payload.TweetID)
  if err != nil {
    log.Println("thread fetch failed", payload.TweetID, err)
    return nil
  }
  log.Println("thread fetched", payload.TweetID, result.TweetCount)
  return nil
}
