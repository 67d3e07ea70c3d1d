package main

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli"
)

// Version of sevsecret
const Version = "0.01"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sevsecret"
	app.Usage = "Build the SEV launch secret table carrying a disk password"
	app.Version = Version
	app.Commands = []cli.Command{
		createCmd,
		guidCmd,
	}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "display additional debug information",
			EnvVar: "SEVSECRET_DEBUG",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}
	return app
}

// errWriter is where operator facing messages go.
func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("%v\n", err)
	}
}
