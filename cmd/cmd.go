package cmd

import (
	"fmt"
	"os"

	"github.com/starshine-sys/discache/cmd/replay"
	"github.com/starshine-sys/discache/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "discache",
	Usage:   "Discord entity cache",
	Version: common.Version(),

	Commands: []*cli.Command{
		replay.Command,
		versionCommand,
	},
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Show the version",
	Action: func(c *cli.Context) error {
		fmt.Fprintln(c.App.Writer, common.Version())
		return nil
	},
}

func Run() error {
	return app.Run(os.Args)
}
