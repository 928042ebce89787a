package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-pitch/internal/app"
	"github.com/tendant/simple-pitch/pkg/simplepitch/config"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the pitchctl command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pitchctl",
		Short: "Manage and present the pitch-deck catalog",
		Long: `pitchctl works on the same catalog and doctor directory as the pitch server.

Configuration is read from PITCH_* environment variables; --storage overrides
PITCH_STORAGE_URL. Pending changes are flushed before every command exits.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("storage", "", "storage URL (overrides PITCH_STORAGE_URL)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(NewBrandsCommand())
	rootCmd.AddCommand(NewDoctorsCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewPresentCommand())
	rootCmd.AddCommand(NewResetCommand())

	return rootCmd
}

// withApp opens the app from flags and environment, runs fn and flushes
// pending saves on the way out.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) (err error) {
	opts := []config.Option{config.FromEnv()}
	if storage, _ := cmd.Flags().GetString("storage"); storage != "" {
		opts = append(opts, config.WithStorage(storage))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(context.Background()); cerr != nil && err == nil {
			err = fmt.Errorf("failed to save changes: %w", cerr)
		}
	}()

	return fn(ctx, a)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
