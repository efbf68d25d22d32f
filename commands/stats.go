package commands

import (
  "fmt"
  "os"

  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
)

type StatsHandler struct {
  Db         *gorm.DB
  Repository *repositories.TweetsRepository
}

func NewStatsCommand() *cli.Command {
  var h StatsHandler
  return &cli.Command{
    Name:  "stats",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = StatsHandler{
        Db: common.NewDB(),
      }
      h.Repository = &repositories.TweetsRepository{
        Db: h.Db,
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      for _, collectionType := range []string{
        config.COLLECTION_LIKE,
        config.COLLECTION_BOOKMARK,
        config.COLLECTION_TWEET,
        config.COLLECTION_REPOST,
        config.COLLECTION_REPLY,
        config.COLLECTION_FEED,
      } {
        fmt.Printf("%v: %v\n", collectionType, h.Repository.Count(collectionType))
      }
      fmt.Printf("tweets: %v\n", h.Repository.Total())
      if info, err := os.Stat(common.DbPath()); err == nil {
        fmt.Printf("db size: %v bytes\n", info.Size())
      }
      return nil
    },
  }
}
