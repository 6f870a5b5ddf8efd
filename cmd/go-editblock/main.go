// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-editblock applies SEARCH/REPLACE edits to files.
// Implements: prd007-cli R1.1-R1.8;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-editblock/pkg/editblock"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree and binds its flags to viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-editblock",
		Short: "Fuzzy SEARCH/REPLACE patch engine",
		Long: "go-editblock locates a search snippet in a file, tolerating wrapper lines, " +
			"indentation drift, elided regions and small transcription errors, and replaces it.",
		SilenceUsage: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Base directory for relative paths and git operations")
	rootCmd.PersistentFlags().Float64("threshold", 0.8, "Minimum fuzzy match similarity")
	rootCmd.PersistentFlags().Float64("window-scale", 0.1, "Fuzzy window length tolerance")
	rootCmd.PersistentFlags().String("scorer", editblock.ScorerRatio, "Similarity function (ratio, levenshtein)")
	rootCmd.PersistentFlags().String("fence-open", "```", "Opening fence line stripped from snippets")
	rootCmd.PersistentFlags().String("fence-close", "```", "Closing fence line stripped from snippets")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log matching decisions to stderr")
	rootCmd.PersistentFlags().Bool("commit", false, "Commit patched files to git")
	rootCmd.PersistentFlags().StringP("message", "m", "", "Description used for the commit message")

	// Bind flags to viper.
	for _, name := range []string{
		"workdir", "threshold", "window-scale", "scorer", "fence-open",
		"fence-close", "verbose", "commit", "message",
	} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Env vars: GO_EDITBLOCK_THRESHOLD, GO_EDITBLOCK_WINDOW_SCALE, etc.
	viper.SetEnvPrefix("GO_EDITBLOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-editblock")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newBlocksCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-editblock version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go-editblock %s\n", version)
		},
	}
}

// patcherConfig assembles the library config from viper.
func patcherConfig(cmd *cobra.Command) editblock.Config {
	return editblock.Config{
		FuzzyThreshold: viper.GetFloat64("threshold"),
		WindowScale:    viper.GetFloat64("window-scale"),
		Scorer:         viper.GetString("scorer"),
		FenceOpen:      viper.GetString("fence-open"),
		FenceClose:     viper.GetString("fence-close"),
		Logger:         newLogger(cmd.ErrOrStderr()),
	}
}

// newLogger returns a debug text logger on w when --verbose is set, and a
// discarding logger otherwise.
func newLogger(w io.Writer) *slog.Logger {
	if !viper.GetBool("verbose") {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// workDir returns the absolute --workdir.
func workDir() (string, error) {
	dir, err := filepath.Abs(viper.GetString("workdir"))
	if err != nil {
		return "", fmt.Errorf("resolving workdir: %w", err)
	}
	return dir, nil
}
