package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jbweber/macbox/internal/config"
	"github.com/jbweber/macbox/internal/output"
	"github.com/jbweber/macbox/internal/runner"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	// opts collects the artifact flags shared by every command.
	opts config.Options

	configFile   string
	reportFormat string
	outputFormat string
	noHeaders    bool

	v = viper.New()
	a *app
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError logs a fatal error through the configured logger. Errors
// raised before logging is set up are printed plainly to w.
func reportError(w io.Writer, err error) {
	if a != nil && a.logger != nil {
		a.logger.Error(err.Error())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

var rootCmd = &cobra.Command{
	Use:   "macbox",
	Short: "macbox - build macOS Vagrant boxes from an installer app",
	Long: `macbox turns a macOS installer app into registered Vagrant boxes.

Each run works out which artifacts are missing and only builds those:

  installer app -> autoinstall image -> base box -> flavor box

An artifact that already exists, or a box that is already registered with
Vagrant, is never rebuilt. Names and paths that are not given on the command
line default to macos<version> below the macbox root directory.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		a, err = newApp(settings, runner.StdStreams())
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportFormat != "" {
			if err := output.ValidateFormat(reportFormat); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		p, err := a.planner.Plan(ctx, opts)
		if err != nil {
			return err
		}

		report, err := a.executor.Execute(ctx, p)
		if reportFormat != "" && report != nil {
			if perr := printReport(report); perr != nil && err == nil {
				err = perr
			}
		}
		return err
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.InstallerPath, "installer-path", "", "path to the macOS installer app")
	flags.StringVar(&opts.ImagePath, "image-path", "", "path of the autoinstall image (default <root>/dmg/macos<version>.dmg)")
	flags.StringVar(&opts.BaseBoxName, "base-box-name", "", "name of the base box (default macos<version>)")
	flags.StringVar(&opts.BaseBoxPath, "base-box-path", "", "path of the base box file (default <root>/box/<base-box-name>.box)")
	flags.StringVar(&opts.FlavorName, "flavor-name", "", "flavor to build on top of the base box, from <root>/flavor")
	flags.StringVar(&opts.FlavorBoxName, "flavor-box-name", "", "name of the flavor box (default <base-box-name>-<flavor-name>)")
	flags.StringVar(&opts.FlavorBoxPath, "flavor-box-path", "", "path of the flavor box file (default <root>/box/<flavor-box-name>.box)")

	flags.StringVar(&configFile, "config", "", "config file (default ./macbox.yaml or $HOME/.config/macbox/macbox.yaml)")
	flags.String(config.KeyRootDir, "", "macbox root directory (default: directory of the macbox binary)")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, "text", "log format (text, json)")
	for _, key := range []string{config.KeyRootDir, config.KeyLogLevel, config.KeyLogFormat} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.Flags().StringVarP(&reportFormat, "output", "o", "", "print a build report when done (table, yaml, json)")
	rootCmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit table headers")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(boxesCmd)
}

