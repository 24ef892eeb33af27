package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/jot"
)

var (
	verbose bool
	baseDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A local-first note-taking tool with deep-linkable selection",
	Long: `Jot keeps short text notes in a local store, searchable and
deep-linkable: the currently selected note is encoded in a route with real
back/forward history, shared across invocations through a session file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		initConfig()
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "Notes directory (default: config, $JOT_DIR, or the working directory)")
}

// initConfig wires viper: flags > environment > config file > defaults.
func initConfig() {
	viper.SetDefault("debounce_ms", 300)
	viper.SetDefault("theme", "light")

	viper.SetEnvPrefix("JOT")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.jot")
	}
	viper.AddConfigPath(".jot")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Debug("skipping config file", "error", err)
		}
	}

	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
}

// resolveDir picks the notes directory: --dir flag, then config/env, then
// the working directory.
func resolveDir() (string, error) {
	if dir := viper.GetString("dir"); dir != "" {
		return dir, nil
	}
	return os.Getwd()
}

// openEngine starts an engine for one CLI invocation. The returned closer
// flushes any pending write before releasing the engine, so a mutation made
// inside the debounce window survives the process.
func openEngine() (*jot.Engine, func(), error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve notes directory: %w", err)
	}

	eng, err := jot.Open(context.Background(), dir,
		jot.WithLogger(slog.Default()),
		jot.WithDebounce(time.Duration(viper.GetInt("debounce_ms"))*time.Millisecond),
	)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		eng.Flush()
		_ = eng.Close()
	}
	return eng, closer, nil
}
