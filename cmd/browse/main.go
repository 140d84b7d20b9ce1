package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-tech-digest/internal/app"
	"github.com/samvad-hq/samvad-tech-digest/internal/config"
	"github.com/samvad-hq/samvad-tech-digest/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "browse failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	req, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the rendered view.
	log, err := logger.InitTo(cfg.LogLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	browser, err := app.NewBrowser(cfg, log)
	if err != nil {
		return err
	}
	defer browser.Close()

	out, _, err := browser.Browse(ctx, req)
	if out != "" {
		fmt.Print(out)
	}
	return err
}

func parseArgs(args []string) (app.BrowseRequest, error) {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	session := fs.String("session", app.DefaultSessionID, "session id to restore and save")
	term := fs.String("q", "", "filter term; an empty value clears the stored filter")
	source := fs.String("source", "", "view to show: all, Currents, Mediastack or NewsAPI")
	next := fs.Bool("next", false, "advance the selected source")
	prev := fs.Bool("prev", false, "go back in the selected source")
	jump := fs.String("jump", "", "jump the selected source to the first article with this exact title")

	if err := fs.Parse(args); err != nil {
		return app.BrowseRequest{}, err
	}

	req := app.BrowseRequest{SessionID: *session, Source: *source}
	actions := 0
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "q":
			req.Term = term
		case "next":
			if *next {
				req.Action = app.ActionNext
				actions++
			}
		case "prev":
			if *prev {
				req.Action = app.ActionPrev
				actions++
			}
		case "jump":
			req.Action = app.ActionJump
			req.JumpTitle = *jump
			actions++
		}
	})
	if actions > 1 {
		return app.BrowseRequest{}, fmt.Errorf("use only one of -next, -prev or -jump")
	}
	return req, nil
}
