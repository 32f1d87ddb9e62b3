package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"hop.computer/slist/app"
	"hop.computer/slist/flags"
)

func main() {
	logrus.SetLevel(logrus.InfoLevel)
	f, err := flags.ParseRunnerArgs(os.Args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logrus.Fatal(err)
	}
	cfg, err := flags.LoadRunnerConfigFromFlags(f)
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}

	app.ConfigureLogging(cfg, os.Stderr, cfg.ColorEnabled() && app.IsTerminal(os.Stderr))
	r := app.NewRunner(cfg, os.Stdout, cfg.ColorEnabled() && app.IsTerminal(os.Stdout))

	if f.List {
		if err := r.List(os.Stdout); err != nil {
			logrus.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := r.Run(ctx); err != nil {
		stop()
		logrus.Fatal(err)
	}
}
