package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ivoronin/scandog/internal/config"
	"github.com/ivoronin/scandog/internal/scanner"
)

// scanOptions holds CLI flags for the scan command.
type scanOptions struct {
	pattern        string
	workers        int
	skipHidden     bool
	followSymlinks bool
	timeout        time.Duration
	jsonOutput     bool
	noProgress     bool
	verbose        bool
	configFile     string
}

// newScanCmd creates the scan subcommand.
func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree and report aggregate disk usage",
		Long: `Walks the directory tree under path with a bounded worker pool and
reports total size, file and directory counts, and optionally the files
whose names match a regular expression.

Per-path failures (unreadable directories, dangling symlinks) never abort
the scan; they are accumulated and reported alongside the totals. A scan
truncated by --timeout or an interrupt still prints its partial result,
marked as such.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], opts, cmd.Flags().Changed)
		},
	}

	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "Regex to filter files by base name")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.skipHidden, "skip-hidden", false, "Skip hidden files and directories")
	cmd.Flags().BoolVar(&opts.followSymlinks, "follow-symlinks", false, "Follow symbolic links (cycle-safe)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Maximum scan duration (e.g. 30s, 5m)")
	cmd.Flags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output result as JSON")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show debug logging and full error details")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file with scan defaults")

	return cmd
}

// runScan wires config file, flags, logging and signals around one scan.
func runScan(path string, opts *scanOptions, flagChanged func(string) bool) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	// Explicit flags override config file values.
	if flagChanged("workers") {
		cfg.Workers = opts.workers
	}
	if flagChanged("skip-hidden") {
		cfg.SkipHidden = opts.skipHidden
	}
	if flagChanged("follow-symlinks") {
		cfg.FollowSymlinks = opts.followSymlinks
	}
	if flagChanged("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flagChanged("no-progress") {
		cfg.NoProgress = opts.noProgress
	}

	pattern, err := parsePattern(opts.pattern)
	if err != nil {
		return fmt.Errorf("invalid --pattern: %w", err)
	}

	logger := newLogger(opts.verbose)

	s, err := scanner.New(scanner.Config{
		Root:           path,
		Pattern:        pattern,
		Workers:        cfg.Workers,
		SkipHidden:     cfg.SkipHidden,
		FollowSymlinks: cfg.FollowSymlinks,
		Timeout:        cfg.Timeout,
		ShowProgress:   !cfg.NoProgress && !opts.jsonOutput,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	// Operator interrupt truncates the scan; the partial result still
	// renders, with TimedOut left false.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		logger.Info().Msg("interrupt received, stopping scan")
		s.Stop()
	}()

	result := s.Run()

	if opts.jsonOutput {
		return renderJSON(os.Stdout, result)
	}
	renderHuman(os.Stdout, result, opts.verbose)
	return nil
}

// newLogger builds the CLI logger: debug-level console output on stderr
// under --verbose, silent otherwise.
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}
