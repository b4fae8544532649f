package main

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	configCmd.AddCommand(newConfigShowCommand())
	return configCmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(cfg.SmartPlaylists))
			for _, sp := range cfg.SmartPlaylists {
				names = append(names, sp.Name)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendRows([]table.Row{
				{"Config file", path},
				{"Music root", cfg.MusicRootPath()},
				{"Library directory", cfg.LibraryDir()},
				{"Playlists directory", cfg.PlaylistsPath()},
				{"Source directories", strings.Join(cfg.ExpandedSourceDirs(), "\n")},
				{"Supported formats", strings.Join(cfg.SupportedFormats, ", ")},
				{"File naming", cfg.FileNaming},
				{"Smart playlists", strings.Join(names, "\n")},
				{"Auto import", cfg.AutoImport},
				{"Backup playlists", cfg.BackupEnabled()},
			})
			t.Render()
			return nil
		},
	}
}
