package main

import (
	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/project-machine/sevsecret/lib"
	"github.com/project-machine/sevsecret/pkg/secrettable"
)

var errUsage = errors.New("wrong number of arguments")

var createCmd = cli.Command{
	Name:      "create",
	Usage:     "Write a secret table holding the disk password",
	ArgsUsage: "<password|-> <output-path>",
	Description: `The password "-" reads it from $` + lib.PassphraseEnvVar + ` or prompts for it.
   With --generate or --keyring only <output-path> is given.`,
	Action: doCreate,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:   "f,force",
			Usage:  "overwrite an existing output file",
			EnvVar: "SEVSECRET_FORCE",
		},
		cli.IntFlag{
			Name:  "g,generate",
			Usage: "generate a random password of this many characters",
		},
		cli.StringFlag{
			Name:  "k,keyring",
			Usage: "read the password from this user key in the session keyring",
		},
	},
}

// passwordSource picks the password source from the flags and returns it
// along with the output path.
func passwordSource(ctx *cli.Context) (lib.PasswordSource, string, error) {
	args := ctx.Args()
	gen := ctx.Int("generate")
	key := ctx.String("keyring")

	switch {
	case gen != 0 && key != "":
		return nil, "", errors.Errorf("--generate and --keyring are mutually exclusive")
	case gen != 0 || key != "":
		if len(args) != 1 {
			return nil, "", errors.Wrapf(errUsage, "got %d, want <output-path>", len(args))
		}
		if gen != 0 {
			return lib.GeneratedSource{Length: gen, Out: errWriter(ctx)}, args[0], nil
		}
		return lib.KeyringSource(key), args[0], nil
	}

	if len(args) != 2 {
		return nil, "", errors.Wrapf(errUsage, "got %d, want <password> <output-path>", len(args))
	}
	if args[0] == "-" {
		return lib.StdinSource(errWriter(ctx)), args[1], nil
	}
	return lib.ArgSource(args[0]), args[1], nil
}

func doCreate(ctx *cli.Context) error {
	src, dest, err := passwordSource(ctx)
	if err != nil {
		return err
	}

	pw, err := src.Password()
	if err != nil {
		return err
	}
	defer lib.ZeroBytes(pw)

	table, err := secrettable.New(pw)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"table_guid":   table.Header.GUID.String(),
		"table_length": table.Len(),
		"entry_guid":   table.Password.GUID.String(),
		"entry_length": table.Password.Len(),
	}).Debug("Built secret table")

	buf, err := table.MarshalBinary()
	if err != nil {
		return err
	}
	defer lib.ZeroBytes(buf)

	if err := lib.WriteSecret(dest, buf, ctx.Bool("force")); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(errWriter(ctx), "Wrote %d byte secret table to %s\n", len(buf), dest)
	return nil
}
