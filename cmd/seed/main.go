package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/safespace/internal/cli"
	"github.com/dmitrijs2005/safespace/internal/config"
	"github.com/dmitrijs2005/safespace/internal/flagx"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/seed"
	"github.com/dmitrijs2005/safespace/internal/storage"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, os.Stderr)

	opts := seed.DefaultOptions()
	var yes bool

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.IntVar(&opts.Staff, "staff", opts.Staff, "counselor accounts to add")
	fs.IntVar(&opts.Users, "users", opts.Users, "regular user accounts to add")
	fs.BoolVar(&yes, "y", false, "do not ask for confirmation")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-staff", "-users", "-y"})); err != nil {
		panic(err)
	}

	if !yes {
		answer, err := cli.GetSimpleText(bufio.NewReader(os.Stdin),
			"This adds demo accounts and mood history to "+cfg.DatabaseDSN+". Continue? (y/N)", os.Stdout)
		if err != nil || !strings.EqualFold(answer, "y") {
			fmt.Println("Cancelled.")
			return
		}
	}

	st, err := storage.InitDatabase(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	rep, err := seed.Populate(ctx, st.DB, st.Manager, opts, log)
	if err != nil {
		log.Error(ctx, "seeding failed", "error", err)
		st.Close()
		os.Exit(1)
	}

	fmt.Printf("Added %d counselors, %d users and %d mood entries.\n", rep.Staff, rep.Users, rep.Moods)
}
