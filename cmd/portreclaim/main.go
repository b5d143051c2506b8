package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zavul0nn/portreclaim"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	root := buildRoot(&Flags{})
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRoot creates the single root command; the tool has no subcommands.
func buildRoot(flags *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "portreclaim",
		Short: "Free a TCP port by terminating its occupants",
		Long: `portreclaim discovers which processes are bound to a TCP port, asks them
to shut down gracefully, and escalates to a forceful kill for any that
do not comply. It exits non-zero when the port stays occupied.

Examples:
  portreclaim                          # free the default port 5000
  portreclaim --port 8080
  portreclaim --port 8080 --dry-run    # show occupants, send nothing
  portreclaim --config reclaim.toml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	root.Flags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	root.Flags().IntVar(&flags.Port, "port", portreclaim.DefaultPort, "TCP port to reclaim")
	root.Flags().DurationVar(&flags.GraceWait, "grace-wait", 0, "wait after SIGTERM before rechecking (default 2s)")
	root.Flags().DurationVar(&flags.KillWait, "kill-wait", 0, "wait after SIGKILL before the final check (default 1s)")
	root.Flags().StringSliceVar(&flags.Backends, "backends", nil, "discovery backend order (lsof, fuser, netstat, ss)")
	root.Flags().BoolVar(&flags.DryRun, "dry-run", false, "discover and describe occupants without signaling")
	root.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress progress lines, keep the final report")
	root.Flags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().StringVar(&flags.LogFormat, "log-format", "", "log format: text or json")
	root.Flags().BoolVar(&flags.NoColor, "no-color", false, "disable ANSI colors in text logs")
	root.Flags().StringVar(&flags.LogFile, "log-file", "", "also append logs to this rotating file")
	root.Flags().StringVar(&flags.PushGateway, "push-gateway", "", "Prometheus Pushgateway URL to push run metrics to")

	return root
}

// run resolves config (file first, explicit flags override), performs the
// reclamation and maps the result to the process exit status.
func run(cmd *cobra.Command, flags *Flags) error {
	fc := portreclaim.DefaultConfig()
	if flags.ConfigPath != "" {
		loaded, err := portreclaim.LoadConfig(flags.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", flags.ConfigPath, err)
		}
		fc = loaded
	}

	set := cmd.Flags().Changed
	if set("port") {
		fc.Reclaim.Port = flags.Port
	}
	if set("grace-wait") {
		fc.Reclaim.GraceWait = flags.GraceWait
	}
	if set("kill-wait") {
		fc.Reclaim.KillWait = flags.KillWait
	}
	if set("backends") {
		fc.Reclaim.Backends = flags.Backends
	}
	if set("log-level") {
		fc.Log.Level = flags.LogLevel
	}
	if set("log-format") {
		fc.Log.Format = flags.LogFormat
	}
	if set("log-file") {
		fc.Log.File = flags.LogFile
	}
	if set("push-gateway") {
		fc.Metrics.PushgatewayURL = flags.PushGateway
	}
	if flags.NoColor {
		fc.Log.Color = false
	}
	if flags.Quiet {
		fc.Log.Level = "error"
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	log := portreclaim.NewLogger(portreclaim.LoggerConfig{
		Level:      fc.Log.Level,
		Format:     fc.Log.Format,
		Color:      fc.Log.Color,
		File:       fc.Log.File,
		MaxSizeMB:  fc.Log.MaxSizeMB,
		MaxBackups: fc.Log.MaxBackups,
		MaxAgeDays: fc.Log.MaxAgeDays,
		Compress:   fc.Log.Compress,
	})

	if err := portreclaim.RegisterMetricsDefault(); err != nil {
		log.Warn("metrics registration failed", "error", err)
	}

	rec, err := portreclaim.New(portreclaim.Options{
		GraceWait: fc.Reclaim.GraceWait,
		KillWait:  fc.Reclaim.KillWait,
		Backends:  fc.Reclaim.Backends,
		DryRun:    flags.DryRun,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	res := rec.Reclaim(fc.Reclaim.Port)
	fmt.Print(res.Report())

	if fc.Metrics.PushgatewayURL != "" {
		if err := portreclaim.PushMetrics(fc.Metrics.PushgatewayURL, fc.Metrics.Job); err != nil {
			log.Warn("metrics push failed", "url", fc.Metrics.PushgatewayURL, "error", err)
		}
	}

	if res.ExitCode() != 0 {
		return fmt.Errorf("port %d still occupied", fc.Reclaim.Port)
	}
	return nil
}
