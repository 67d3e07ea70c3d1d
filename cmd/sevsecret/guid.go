package main

import (
	"encoding/hex"
	"fmt"
	"io"

	efi "github.com/canonical/go-efilib"
	"github.com/urfave/cli"

	"github.com/project-machine/sevsecret/pkg/secrettable"
)

var guidCmd = cli.Command{
	Name:        "guid",
	Usage:       "Show the EFI wire encoding of GUIDs",
	ArgsUsage:   "[GUID...]",
	Description: `Without arguments the table header and disk password GUIDs are shown.`,
	Action:      doGUID,
}

func doGUID(ctx *cli.Context) error {
	w := ctx.App.Writer
	if ctx.NArg() == 0 {
		printGUID(w, "table-header", secrettable.TableHeaderGUID)
		printGUID(w, "disk-password", secrettable.DiskPasswordGUID)
		return nil
	}

	for _, s := range ctx.Args() {
		g, err := secrettable.ParseGUID(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", g, hex.EncodeToString(g[:]))
	}
	return nil
}

func printGUID(w io.Writer, name string, g efi.GUID) {
	fmt.Fprintf(w, "%-14s %s %s\n", name, g, hex.EncodeToString(g[:]))
}
