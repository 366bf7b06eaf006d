package main

import (
	"io"
	stdlog "log"
	"os"

	"github.com/alecthomas/kong"
	konghcl "github.com/alecthomas/kong-hcl/v2"
	"github.com/squareup/hkcost/conf"
	"github.com/squareup/hkcost/errors"
	plog "github.com/squareup/hkcost/log"
)

type arguments struct {
	Config kong.ConfigFlag `help:"Path to config file" type:"existingfile"`
	Log    plog.Config     `help:"Configuration for the logger" embed:"" prefix:"log-"`
	Cost   conf.Config     `help:"Cost model configuration" embed:"" prefix:""`

	Stats        statsCmd        `cmd:"" help:"Print the row count and row width of every table and index."`
	Scan         scanCmd         `cmd:"" help:"Cost a scan of a table or an index."`
	GroupScan    groupScanCmd    `cmd:"" help:"Cost a scan of a table and everything below it in its group."`
	BranchLookup branchLookupCmd `cmd:"" help:"Cost retrieving one branch rooted at a row of a table."`
	Ancestors    ancestorsCmd    `cmd:"" help:"Cost looking up the ancestors of a row of a table."`
	RecordCounts recordCountsCmd `cmd:"" help:"Write the row counts declared in the catalog file to the row count store."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		stdlog.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	cfg := arguments{}
	parser, err := kong.New(&cfg,
		kong.Name("hkcost"),
		kong.Description("Cost physical operators against a grouped schema."),
		kong.Configuration(konghcl.Loader),
		kong.Writers(out, out))
	if err != nil {
		return errors.WithStack(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := cfg.Log.Configure(); err != nil {
		return err
	}
	if err := cfg.Cost.Validate(); err != nil {
		return err
	}
	return ctx.Run(&environment{cfg: cfg.Cost, out: out})
}
