package commands

import (
  "context"
  "log"

  "github.com/hibiken/asynq"
  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/queue/asynq/workers"
)

type QueueHandler struct {
  ApiContext *common.ApiContext
}

func NewQueueCommand() *cli.Command {
  var h QueueHandler
  return &cli.Command{
    Name:  "queue",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = QueueHandler{
        ApiContext: &common.ApiContext{
          Db:  common.NewDB(),
          Rdb: common.NewRedis(),
          Ctx: context.Background(),
        },
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *QueueHandler) run() error {
  threads := workers.NewThreads(h.ApiContext.Db, h.ApiContext.Rdb, h.ApiContext.Ctx)

  mux := asynq.NewServeMux()
  mux.HandleFunc(config.ASYNQ_THREADS_FETCH, threads.Fetch)

  log.Println("queue workers starting...")
  return common.NewAsynqServer().Run(mux)
}
