package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/safespace/internal/buildinfo"
	"github.com/dmitrijs2005/safespace/internal/cli"
	"github.com/dmitrijs2005/safespace/internal/config"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/services"
	"github.com/dmitrijs2005/safespace/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, os.Stderr)

	st, err := storage.InitDatabase(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		fmt.Fprintln(os.Stderr, "SafeSpace could not open its database:", err)
		os.Exit(1)
	}
	defer st.Close()

	svc := services.NewWellnessService(st.DB, st.Manager, cfg, log)
	app := cli.NewApp(svc, log, os.Stdin, os.Stdout)

	app.Run(ctx)

}
