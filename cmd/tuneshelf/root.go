package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tuneshelf/config"
	"tuneshelf/organize"
	"tuneshelf/organize/history"
	"tuneshelf/organize/selection"
)

// historyRetention is how many organize runs are kept on disk.
const historyRetention = 20

func newRootCommand() *cobra.Command {
	var autoFlag bool
	var sourceFlags []string

	rootCmd := &cobra.Command{
		Use:           "tuneshelf",
		Short:         "Organize audio files into a canonical library and playlists",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, autoFlag, sourceFlags)
		},
	}

	rootCmd.Flags().BoolVar(&autoFlag, "auto", false, "non-interactive mode: classify with smart playlist rules only")
	rootCmd.Flags().StringArrayVarP(&sourceFlags, "source", "s", nil, "custom source directory to scan (repeatable, overrides configured source_dirs)")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newSetupCommand())

	return rootCmd
}

func runOrganize(cmd *cobra.Command, auto bool, customSources []string) error {
	logger := newLogger()

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	interactive := !auto && isatty.IsTerminal(os.Stdin.Fd())

	sources := cfg.ExpandedSourceDirs()
	if len(customSources) > 0 {
		sources = sources[:0]
		for _, s := range customSources {
			sources = append(sources, config.ExpandUser(s))
		}
	}

	candidates := organize.Scan(sources, cfg.SupportedFormats, logger)
	if len(candidates) == 0 {
		fmt.Println("No music files found in source directories.")
		fmt.Printf("Source directories: %s\n", strings.Join(sources, ", "))
		fmt.Printf("Supported formats: %s\n", strings.Join(cfg.SupportedFormats, ", "))
		return nil
	}

	fmt.Printf("Found %d music file(s) to organize:\n", len(candidates))
	for _, c := range candidates {
		fmt.Printf("  - %s\n", c)
	}
	if interactive && !confirm(os.Stdin, os.Stdout, "\nProceed with organization? (Y/n): ") {
		return nil
	}

	autoStrategy := &selection.Auto{Playlists: cfg.SmartPlaylists, Dir: cfg.PlaylistsPath()}
	var strategy selection.Strategy = autoStrategy
	if interactive {
		strategy = &selection.Interactive{
			Dir:  cfg.PlaylistsPath(),
			Auto: autoStrategy,
			In:   os.Stdin,
			Out:  os.Stdout,
		}
	}

	tracker, err := history.NewTracker(filepath.Join(filepath.Dir(cfgPath), "history"), historyRetention, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("run history disabled")
		tracker = nil
	}

	organizer := organize.New(cfg, strategy, tracker, logger)
	summary, err := organizer.Run(cmd.Context(), candidates)
	if err != nil {
		return err
	}

	renderSummary(os.Stdout, summary)
	return nil
}

// loadConfig resolves the configuration path (TUNESHELF_CONFIG or the
// default location) and loads it, creating defaults when absent.
func loadConfig() (*config.Config, string, error) {
	path := os.Getenv("TUNESHELF_CONFIG")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("TUNESHELF_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func confirm(in *os.File, out *os.File, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer != "n" && answer != "no"
}
