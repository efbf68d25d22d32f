package commands

import (
  "context"
  "errors"
  "log"
  "time"

  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/repositories"
  "github.com/tfriedel/tweethoarder/repositories/sync"
)

type ThreadHandler struct {
  ApiContext *common.ApiContext
  Repository *sync.ThreadsRepository
}

func NewThreadCommand() *cli.Command {
  var h ThreadHandler
  return &cli.Command{
    Name:  "thread",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = ThreadHandler{
        ApiContext: &common.ApiContext{
          Db:  common.NewDB(),
          Rdb: common.NewRedis(),
          Ctx: context.Background(),
        },
      }
      h.Repository = &sync.ThreadsRepository{
        Db:  h.ApiContext.Db,
        Ctx: h.ApiContext.Ctx,
        Tweets: &repositories.TweetsRepository{
          Db: h.ApiContext.Db,
        },
        QueryIds: &repositories.QueryIdsRepository{
          Rdb: h.ApiContext.Rdb,
          Ctx: h.ApiContext.Ctx,
        },
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "fetch",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.fetch(c.Args().First()); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *ThreadHandler) fetch(tweetID string) error {
  if tweetID == "" {
    return errors.New("tweet id missing")
  }
  credentials, err := (&repositories.CredentialsRepository{}).Resolve()
  if err != nil {
    return err
  }
  h.Repository.Transport = &sync.Transport{
    Client:  common.NewHttpClient(15 * time.Second),
    Headers: credentials.Headers(),
  }
  result, err := h.Repository.FetchThread(tweetID)
  if err != nil {
    return err
  }
  log.Println("thread fetched", tweetID, result.TweetCount)
  return nil
}
