package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
)

type snapshotCmd struct {
	sel    selectionFlags
	output string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "render the dashboard once to the terminal and a PNG file" }
func (*snapshotCmd) Usage() string {
	return `priceboard snapshot [-months <n>] [-ymin <p>] [-ymax <p>] [-companies <a,b>] [-o <chart.png>]

  Runs one render pass, prints the price table as markdown and writes the
  chart image.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	c.sel.register(f)
	f.StringVar(&c.output, "o", "chart.png", "Path of the chart image.")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sel := a.controls.Resolve(c.sel.input())
	page := a.pipeline.Guarded(ctx, sel)
	printMarkdown(pageMarkdown(page, a.pipeline.Text.TableHeading))
	if page.Failed() {
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(c.output, page.View.PNG, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("[INFO] chart written to %s (%d points)", c.output, page.View.Chart.PointCount())
	return subcommands.ExitSuccess
}
