package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fantasim/seedcheck/internal/api"
	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/hdkey"
	"github.com/Fantasim/seedcheck/internal/logging"
	"github.com/Fantasim/seedcheck/internal/search"
)

var version = "dev"

// Exit codes for the check subcommand, matching the one-shot checker
// convention: 0 match, 1 exhausted without a match, 2 abnormal failure.
const (
	exitFound     = 0
	exitExhausted = 1
	exitError     = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitError)
	}

	switch os.Args[1] {
	case "check":
		os.Exit(runCheck())
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(exitError)
		}
	case "version":
		fmt.Printf("seedcheck %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(exitError)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: seedcheck <command>

Commands:
  check     Search the key tree of a mnemonic for a target address
  serve     Start the HTTP server
  version   Print version information
`)
}

func runCheck() int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "Mnemonic sentence (or set SEEDCHECK_MNEMONIC)")
	mnemonicFile := fs.String("mnemonic-file", "", "Path to file containing the mnemonic (or SEEDCHECK_MNEMONIC_FILE)")
	address := fs.String("address", "", "Target legacy address (or SEEDCHECK_TARGET_ADDRESS)")
	workers := fs.Int("workers", 0, "Worker goroutines; 0 = all CPUs, 1 = sequential reference order")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return exitError
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		slog.Error("failed to setup logging", "error", err)
		return exitError
	}
	defer logCloser.Close()

	// Flags override environment configuration.
	if *mnemonic != "" {
		cfg.Mnemonic = *mnemonic
	}
	if *mnemonicFile != "" {
		cfg.MnemonicFile = *mnemonicFile
	}
	if *address != "" {
		cfg.TargetAddress = *address
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}

	phrase := cfg.Mnemonic
	if phrase == "" && cfg.MnemonicFile != "" {
		phrase, err = hdkey.ReadMnemonicFromFile(cfg.MnemonicFile)
		if err != nil {
			slog.Error("failed to read mnemonic file", "error", err)
			return exitError
		}
	}
	if phrase == "" {
		slog.Error("no mnemonic provided", "error", config.ErrMnemonicNotSet)
		return exitError
	}
	if cfg.TargetAddress == "" {
		slog.Error("no target address provided", "error", config.ErrTargetNotSet)
		return exitError
	}

	target, err := hdkey.ParseAddress(cfg.TargetAddress)
	if err != nil {
		slog.Error("invalid target address", "address", cfg.TargetAddress, "error", err)
		return exitError
	}

	slog.Info("starting search",
		"version", version,
		"target", target.String(),
		"accounts", cfg.Accounts,
		"addressGap", cfg.AddressGap,
		"workers", cfg.Workers,
	)

	master, err := hdkey.NewMaster(hdkey.SeedFromMnemonic(phrase))
	if err != nil {
		slog.Error("master key derivation failed", "error", err)
		return exitError
	}

	limits := search.Limits{
		Accounts:   uint32(cfg.Accounts),
		AddressGap: uint32(cfg.AddressGap),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	match, found, err := search.RunParallel(ctx, master, target, limits, cfg.Workers)
	if err != nil {
		slog.Error("search aborted", "error", err)
		return exitError
	}

	if !found {
		fmt.Println("no match: search space exhausted")
		return exitExhausted
	}

	fmt.Printf("match: %s (%s) -> %s\n", match.Path, match.Template, match.Address)
	return exitFound
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting seedcheck",
		"version", version,
		"port", cfg.Port,
		"accounts", cfg.Accounts,
		"addressGap", cfg.AddressGap,
		"logLevel", cfg.LogLevel,
	)

	router := api.NewRouter(cfg)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", "error", err)
			os.Exit(exitError)
		}
	}()

	<-done
	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
