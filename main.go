package main

import (
  "log"
  "os"
  "path"
  "path/filepath"

  "github.com/joho/godotenv"
  "github.com/urfave/cli/v2"

  "github.com/tfriedel/tweethoarder/commands"
)

func main() {
  if err := godotenv.Load(path.Join(filepath.Dir(os.Args[0]), ".env")); err != nil {
    dir, _ := os.Getwd()
    godotenv.Load(path.Join(dir, ".env"))
  }

  app := &cli.App{
    Name:  "tweethoarder commands",
    Usage: "",
    Action: func(c *cli.Context) error {
      if c.Command.Action == nil {
        cli.ShowAppHelp(c)
      } else {
        log.Fatalln("error", c.Err())
      }
      return nil
    },
    Commands: []*cli.Command{
      commands.NewDbCommand(),
      commands.NewQueryIdsCommand(),
      commands.NewSyncCommand(),
      commands.NewThreadCommand(),
      commands.NewExportCommand(),
      commands.NewStatsCommand(),
      commands.NewApiCommand(),
      commands.NewQueueCommand(),
      commands.NewCronCommand(),
    },
    Version: "0.0.0",
  }

  err := app.Run(os.Args)
  if err != nil {
    log.Fatalln("error", err)
  }
}
