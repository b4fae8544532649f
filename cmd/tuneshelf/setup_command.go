package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tuneshelf/config"
)

func newSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive first-time setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(os.Stdin, os.Stdout)
		},
	}
}

// runSetup walks through the main settings, keeping current values on an
// empty answer, and saves the configuration.
func runSetup(in *os.File, out *os.File) error {
	fmt.Fprintln(out, "tuneshelf setup")
	fmt.Fprintln(out, strings.Repeat("=", 40))

	path := os.Getenv("TUNESHELF_CONFIG")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	ask := func(prompt, current string) string {
		fmt.Fprintf(out, "%s [%s]: ", prompt, current)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return current
		}
		if answer := strings.TrimSpace(line); answer != "" {
			return answer
		}
		return current
	}

	cfg.MusicRoot = ask("Music root directory", cfg.MusicRoot)
	cfg.AllSongsDir = ask("All songs directory (within music root)", cfg.AllSongsDir)

	fmt.Fprintf(out, "\nCurrent source directories: %s\n", strings.Join(cfg.SourceDirs, ", "))
	fmt.Fprintln(out, "Enter additional source directories (one per line, empty to finish):")
	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		dir := strings.TrimSpace(line)
		if dir == "" {
			break
		}
		if !contains(cfg.SourceDirs, dir) {
			cfg.SourceDirs = append(cfg.SourceDirs, dir)
		}
		if err != nil {
			break
		}
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSetup complete. Configuration saved to %s\n", path)
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
