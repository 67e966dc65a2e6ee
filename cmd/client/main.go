package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/iudanet/gophtasks/internal/client/api"
	"github.com/iudanet/gophtasks/internal/client/cli"
	"github.com/iudanet/gophtasks/internal/client/iocli"
	"github.com/iudanet/gophtasks/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "gophtasks-client.db", "Path to local session database")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, strings.TrimRight(*serverURL, "/"), *dbPath, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, serverURL, dbPath, command string, args []string) error {
	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", slog.Any("error", err))
		}
	}()

	c := cli.New(iocli.NewStdio(), api.NewClient(serverURL), boltStorage, serverURL)
	return c.Run(ctx, command, args)
}

func printVersion() {
	fmt.Printf("GophTasks Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
