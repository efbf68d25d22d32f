package commands

import (
  "context"
  "fmt"
  "log"

  "github.com/go-redis/redis/v8"
  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
)

type QueryIdsHandler struct {
  Rdb        *redis.Client
  Ctx        context.Context
  Repository *repositories.QueryIdsRepository
}

func NewQueryIdsCommand() *cli.Command {
  var h QueryIdsHandler
  return &cli.Command{
    Name:  "queryids",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = QueryIdsHandler{
        Rdb: common.NewRedis(),
        Ctx: context.Background(),
      }
      h.Repository = &repositories.QueryIdsRepository{
        Rdb: h.Rdb,
        Ctx: h.Ctx,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "refresh",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.Refresh(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:  "show",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.Show(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *QueryIdsHandler) Refresh() error {
  log.Println("query ids refreshing...")
  return h.Repository.Refresh()
}

func (h *QueryIdsHandler) Show() error {
  for _, operation := range config.TargetOperations() {
    queryID, err := h.Repository.Get(operation)
    if err != nil {
      return err
    }
    fmt.Printf("%v: %v\n", operation, queryID)
  }
  return nil
}
