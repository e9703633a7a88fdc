package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vncsmyrnk/slotpoll/internal/bootstrap"
	"github.com/vncsmyrnk/slotpoll/internal/cli"
	"github.com/vncsmyrnk/slotpoll/internal/config"
	"github.com/vncsmyrnk/slotpoll/internal/logger"
)

var CLI struct {
	Debug bool `help:"Log to stderr at debug level."`

	Organizer struct {
		Create cli.OrganizerCreateCmd `cmd:"" help:"Create an organizer account."`
		List   cli.OrganizerListCmd   `cmd:"" help:"List organizer accounts."`
		Delete cli.OrganizerDeleteCmd `cmd:"" help:"Delete an organizer account."`
	} `cmd:"" help:"Manage organizers."`
	Poll struct {
		List    cli.PollListCmd    `cmd:"" help:"List stored polls."`
		Results cli.PollResultsCmd `cmd:"" help:"Show the tallies and winner of a poll."`
	} `cmd:"" help:"Inspect polls."`
	Summarize cli.SummarizeCmd `cmd:"" help:"Resolve the winner of every poll."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("pollctl"),
		kong.Description("Administration tool for slotpoll storage"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Debug:  CLI.Debug || cfg.Debug,
		Prefix: "pollctl",
		Quiet:  true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	app, err := bootstrap.New(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := kctx.Run(&cli.Context{App: app, Out: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
