package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"

	"PriceBoard/internal/saver"
)

type exportCmd struct {
	sel    selectionFlags
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the selected prices as long rows" }
func (*exportCmd) Usage() string {
	return `priceboard export [-format csv|json|parquet] [-o <file>] [-months <n>] [-companies <a,b>]

  Fetches the selected companies and writes one (date, name, price) row
  per cell. Missing prices are written as empty or null.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.sel.register(f)
	f.StringVar(&c.format, "format", "csv", "Output format: "+strings.Join(saver.Formats(), ", "))
	f.StringVar(&c.output, "o", "", "Output path. Defaults to prices.<ext>.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := saver.NewRowSaver(c.format)
	if s == nil {
		fmt.Fprintf(os.Stderr, "Unsupported format %q (use: %s)\n", c.format, strings.Join(saver.Formats(), ", "))
		return subcommands.ExitUsageError
	}
	out := c.output
	if out == "" {
		out = "prices." + s.Extension()
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sel := a.controls.Resolve(c.sel.input())
	view, err := a.pipeline.Run(ctx, sel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(view.Long, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		return subcommands.ExitFailure
	}
	log.Printf("[INFO] %d rows written to %s", len(view.Long), out)
	return subcommands.ExitSuccess
}
