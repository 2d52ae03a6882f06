package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/datatools-dev/parqscope/cmd"
)

var cli struct {
	Explore cmd.ExploreCmd `cmd:"" default:"withargs" help:"Explore a Parquet file in the terminal."`
	Serve   cmd.ServeCmd   `cmd:"" help:"Serve metadata, sample rows, and queries over HTTP."`
}

func main() {
	parser := kong.Must(
		&cli,
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Description("Interactive terminal explorer for Parquet files: schema, row group layout, sample rows, and ad-hoc SQL."),
	)
	kongplete.Complete(parser, kongplete.WithPredictor("file", complete.PredictFiles("*")))

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run())
}
