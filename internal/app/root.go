package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqve/cradar/internal/commands"
	"github.com/sqve/cradar/internal/config"
	"github.com/sqve/cradar/internal/logger"
	"github.com/sqve/cradar/internal/vcs"
)

const Version = "v0.1.0"

// NewRootCommand creates and configures the cradar root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cradar",
		Short:   "Predict merge conflicts between your checked-out working trees",
		Version: Version,
		Long: `cradar inspects every working tree attached to a single local repository and
predicts, pairwise, which ones would conflict on merge. It never writes to
the repository or any working directory.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "cradar - merge conflict prediction for local working trees")
			fmt.Fprintln(out, "Run 'cradar --help' for usage information")
		},
	}

	setupRootCommand(rootCmd)
	return rootCmd
}

// setupRootCommand configures flags, commands, and initialization for the root command.
func setupRootCommand(rootCmd *cobra.Command) {
	// Disable automatic error printing to avoid duplicate error messages.
	rootCmd.SilenceErrors = true

	setupFlags(rootCmd)
	setupInitialization(rootCmd)
	registerCommands(rootCmd)
}

// setupFlags adds persistent flags to the root command.
func setupFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (shorthand for --log-level=debug)")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable ANSI colors in non-JSON output")
}

// setupInitialization configures cobra's initialization callback.
func setupInitialization(rootCmd *cobra.Command) {
	cobra.OnInitialize(func() { InitializeConfig(rootCmd) })
}

// registerCommands adds all subcommands to the root command.
func registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewWatchCmd())
}

// InitializeConfig initializes application configuration and logging.
func InitializeConfig(rootCmd *cobra.Command) {
	repoRoot, _ := os.Getwd()
	// The primary working tree is the parent of the repository's common git
	// directory; outside a repository the current directory is used as is.
	if repo, err := vcs.Open(context.Background(), repoRoot); err == nil {
		repoRoot = filepath.Dir(repo.CommonDir)
	}

	if err := config.Initialize(repoRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	bindFlags(rootCmd)
	configureLogging(rootCmd)
}

// bindFlags binds cobra flags to viper configuration.
func bindFlags(rootCmd *cobra.Command) {
	if err := viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind log-level flag: %v\n", err)
	}
	if err := viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind log-format flag: %v\n", err)
	}
	if err := viper.BindPFlag("output.plain", rootCmd.PersistentFlags().Lookup("plain")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind plain flag: %v\n", err)
	}
}

// configureLogging sets up application logging based on flags and configuration.
func configureLogging(rootCmd *cobra.Command) {
	if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
		viper.Set("logging.level", "debug")
	}

	config.Global.Plain = config.GetBool("output.plain")

	loggerConfig := logger.Config{
		Level:  config.GetString("logging.level"),
		Format: config.GetString("logging.format"),
		Output: os.Stderr,
	}

	logger.Configure(loggerConfig)
}
