package commands

import (
  "context"
  "log"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-chi/chi/v5/middleware"
  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/api/v1"
  "github.com/tfriedel/tweethoarder/common"
)

type ApiHandler struct {
  ApiContext *common.ApiContext
}

func NewApiCommand() *cli.Command {
  var h ApiHandler
  return &cli.Command{
    Name:  "api",
    Usage: "",
    Flags: []cli.Flag{
      &cli.StringFlag{
        Name:  "addr",
        Value: ":8080",
      },
    },
    Before: func(c *cli.Context) error {
      h = ApiHandler{
        ApiContext: &common.ApiContext{
          Db:  common.NewDB(),
          Rdb: common.NewRedis(),
          Ctx: context.Background(),
        },
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.run(c.String("addr")); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *ApiHandler) run(addr string) error {
  r := chi.NewRouter()
  r.Use(middleware.Logger)
  r.Use(middleware.Recoverer)
  r.Mount("/api/v1/tweets", v1.NewTweetsRouter(h.ApiContext))
  r.Mount("/api/v1/stats", v1.NewStatsRouter(h.ApiContext))

  log.Println("api listening", addr)
  return http.ListenAndServe(addr, r)
}
