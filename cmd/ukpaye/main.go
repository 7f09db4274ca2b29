package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/ukpaye/internal/config"
	"github.com/rgehrsitz/ukpaye/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries process settings and the logger into every command
type app struct {
	settings config.Settings
	log      *zap.SugaredLogger
	logLevel string
}

// setupLogger builds the logger once flags are parsed. Level precedence: --log-level,
// UKPAYE_LOG_LEVEL, then the command's own default.
func (a *app) setupLogger(defaultLevel string) error {
	level := a.logLevel
	if level == "" {
		level = a.settings.LogLevel
	}
	if level == "" {
		level = defaultLevel
	}
	l, err := logger.New(level, a.settings.Env)
	if err != nil {
		return err
	}
	a.log = l
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{settings: config.LoadSettings(".env")}

	root := &cobra.Command{
		Use:   "ukpaye",
		Short: "UK PAYE payroll calculator",
		Long: "Calculates income tax, National Insurance, student loan and pension deductions\n" +
			"for UK employees, one pay period at a time.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			def := "warn"
			if cmd.Name() == "serve" {
				def = "info"
			}
			return a.setupLogger(def)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		checkCmd(a),
		taxYearsCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ukpaye %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
