package commands

import (
  "io"
  "os"

  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "github.com/tfriedel/tweethoarder/common"
  "github.com/tfriedel/tweethoarder/config"
  "github.com/tfriedel/tweethoarder/repositories"
  "github.com/tfriedel/tweethoarder/repositories/exports"
)

type ExportHandler struct {
  Db         *gorm.DB
  Repository *exports.ExportsRepository
}

func NewExportCommand() *cli.Command {
  var h ExportHandler
  return &cli.Command{
    Name:  "export",
    Usage: "",
    Flags: []cli.Flag{
      &cli.StringFlag{
        Name:  "collection",
        Value: config.COLLECTION_LIKE,
      },
      &cli.StringFlag{
        Name:    "output",
        Aliases: []string{"o"},
      },
    },
    Before: func(c *cli.Context) error {
      h = ExportHandler{
        Db: common.NewDB(),
      }
      h.Repository = &exports.ExportsRepository{
        Db: h.Db,
        Tweets: &repositories.TweetsRepository{
          Db: h.Db,
        },
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "json",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.export(c, h.Repository.Json)
        },
      },
      {
        Name:  "markdown",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.export(c, h.Repository.Markdown)
        },
      },
      {
        Name:  "csv",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.export(c, h.Repository.Csv)
        },
      },
      {
        Name:  "html",
        Usage: "",
        Action: func(c *cli.Context) error {
          return h.export(c, h.Repository.Html)
        },
      },
    },
  }
}

func (h *ExportHandler) export(
  c *cli.Context,
  render func(collectionType string, w io.Writer) error,
) error {
  var writer io.Writer = os.Stdout
  if output := c.String("output"); output != "" {
    file, err := os.Create(output)
    if err != nil {
      return cli.Exit(err.Error(), 1)
    }
    defer file.Close()
    writer = file
  }
  if err := render(c.String("collection"), writer); err != nil {
    return cli.Exit(err.Error(), 1)
  }
  return nil
}
