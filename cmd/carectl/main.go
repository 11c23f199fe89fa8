// Command carectl is a terminal client for patients. Its session survives
// between runs in a local bbolt file.
//
//	carectl login -email ann@x.com
//	carectl search -specialization cardiology
//	carectl book -doctor 3 -date 2026-11-02 -time 09:30
//	carectl list
//	carectl cancel 41
//	carectl reschedule 41 2026-11-03T10:00
//	carectl logout
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/carepoint/appointment-portal/internal/infrastructure/db/bolt"
	"github.com/carepoint/appointment-portal/internal/pkg/config"
	"github.com/carepoint/appointment-portal/pkg/logger"
)

// namespace is the bucket holding the CLI's token and identity snapshot.
const namespace = "cli"

func main() {
	os.Exit(run())
}

func run() int {
	home, _ := os.UserHomeDir()

	global := flag.NewFlagSet("carectl", flag.ContinueOnError)
	state := global.String("state", filepath.Join(home, ".carectl", "state.db"), "session state file")
	apiURL := global.String("api", "", "backend API base URL (default API_BASE_URL)")
	authURL := global.String("auth", "", "backend auth base URL (default AUTH_BASE_URL)")
	verbose := global.Bool("v", false, "log requests to stderr")
	global.Usage = func() {
		fmt.Fprintln(global.Output(), "usage: carectl [flags] <login|logout|whoami|search|book|list|cancel|reschedule> [args]")
		global.PrintDefaults()
	}
	if err := global.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: true, App: "carectl"})

	backend := cfg.Backend
	if *apiURL != "" {
		backend.APIBaseURL = *apiURL
	}
	if *authURL != "" {
		backend.AuthBaseURL = *authURL
	}

	store, err := bolt.Open(*state)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer store.Close(context.Background())

	a, err := newApp(ctx, backend, store.Namespace(namespace), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	a.out = os.Stdout
	a.in = bufio.NewReader(os.Stdin)

	if err := a.dispatch(ctx, global.Arg(0), global.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		return 1
	}
	return 0
}
