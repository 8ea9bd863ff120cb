package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/RichardKnop/minidb/internal/minidb"
	"github.com/RichardKnop/minidb/internal/parser"
	"github.com/RichardKnop/minidb/internal/pkg/logging"
	"github.com/RichardKnop/minidb/internal/repl"
)

const (
	cliName string = "minidb"
)

var CLI struct {
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error). Logs are written to stderr." default:"info" env:"LOG_LEVEL"`
}

func main() {
	kong.Parse(
		&CLI,
		kong.Name(cliName),
		kong.Description("Single table database reading one command per line from stdin."),
		kong.UsageOnError(),
	)

	logger, err := logging.New(CLI.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // flushes buffer, if any

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-c
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}()

	var (
		aPager    = minidb.NewPager(logger, minidb.MaxPages)
		aTable    = minidb.NewTable(logger, minidb.DefaultTableName, aPager)
		aDatabase = minidb.NewDatabase(logger, parser.New(), aTable)
	)

	logger.Debug(
		"database ready",
		zap.String("table", aTable.Name),
		zap.Uint32("capacity", aTable.Capacity()),
		zap.Int("rows_per_page", minidb.RowsPerPage),
		zap.String("max_memory", humanize.IBytes(uint64(minidb.MaxPages*minidb.PageSize))),
	)

	if err := repl.New(logger, aDatabase).Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("session aborted", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
