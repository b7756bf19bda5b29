package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ovalbit/eggtimer/internal/config"
	"github.com/ovalbit/eggtimer/internal/engine"
	"github.com/ovalbit/eggtimer/internal/notify"
	"github.com/ovalbit/eggtimer/internal/storage"
	"github.com/ovalbit/eggtimer/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile  = config.DefaultPath
	storageFile = storage.DefaultPath
	verbose     bool
	plainMode   bool
	silent      bool

	rootCmd = &cobra.Command{
		Use:   "eggtimer",
		Short: "A minimal countdown timer for the terminal.",
		Long:  `Pick a duration from presets or a custom HH:MM entry, start the countdown, and get an audible and visual nudge when it reaches zero.`,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to keep stdout clean for the countdown itself.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to the config file")
	startCmd.Flags().BoolVar(&plainMode, "plain", false, "Line-mode countdown on stdout instead of the interactive TUI")
	startCmd.Flags().BoolVar(&silent, "silent", false, "Suppress the terminal bell on expiry")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(presetsCmd)

	// Wire up recent subcommands.
	recentCmd.AddCommand(recentShowCmd)
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var startCmd = &cobra.Command{
	Use:   "start [HH:MM]",
	Short: "Start a countdown. [Defaults to the interactive picker]",
	Long:  "Start a countdown for the given HH:MM duration. Without an argument the interactive picker opens with the configured presets and recently used durations.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set log level based on flags.
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			logrus.Fatalf("Unable to read config: %v", err)
		}
		st, err := storage.NewOrExistingStorage(storageFile)
		if err != nil {
			logrus.Fatalf("Unable to open or create storage: %v", err)
		}

		notifier := notify.NewTerminal(os.Stdout, cfg.Sound && !silent)

		eng := engine.New(0)
		if len(args) == 1 {
			if err := eng.SetCustomDuration(args[0]); err != nil {
				logrus.Fatalf(
					"Invalid duration %q. Expected a two-digit HH:MM value with minutes 00-59 (example: 00:25).",
					args[0],
				)
			}
			recordRecent(st, eng.State().Label)
		}

		if plainMode {
			if err := runPlain(cmd.Context(), eng, notifier, args); err != nil {
				logrus.Fatal(err)
			}
			return
		}

		presets := mergeUnique(cfg.Presets, st.Data.Recents)
		onConfirm := func(label string) { recordRecent(st, label) }
		if err := tui.Run(cmd.Context(), eng, presets, notifier, onConfirm); err != nil {
			logrus.Fatalf("TUI failed: %v", err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the configured quick-select durations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			logrus.Fatalf("Unable to read config: %v", err)
		}
		for _, p := range cfg.Presets {
			fmt.Fprintln(os.Stdout, p)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage recently used custom durations",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var recentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show recently used custom durations (if any)",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := storage.NewOrExistingStorage(storageFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if len(st.Data.Recents) == 0 {
			fmt.Fprintln(os.Stdout, "No recent durations")
			return
		}
		for _, r := range st.Data.Recents {
			fmt.Fprintln(os.Stdout, r)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear recently used custom durations",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := storage.NewOrExistingStorage(storageFile)
		if err != nil {
			logrus.Fatal(err)
		}
		st.ClearRecents()
		if err := st.Save(); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, "Recent durations cleared")
	},
}

// runPlain drives the countdown without the TUI: one status line per
// second on stdout, bell and acknowledgment at zero.
func runPlain(ctx context.Context, eng *engine.Engine, notifier notify.Notifier, args []string) error {
	if len(args) == 0 {
		return errors.New("start --plain requires an HH:MM duration argument")
	}

	done := make(chan struct{})
	eng.WithSink(func(ev engine.Event) {
		switch e := ev.(type) {
		case engine.Ticked:
			if e.Remaining <= 60 {
				fmt.Fprintf(os.Stdout, "%d seconds remaining\n", e.Remaining)
			} else {
				fmt.Fprintf(os.Stdout, "%s remaining\n", engine.FormatClock(eng.DisplayedRemaining(time.Now())))
			}
		case engine.Expired:
			notifier.PlayAlert()
			notifier.ShowExpiry(e.Label)
			close(done)
		}
	})

	if err := eng.Start(time.Now()); err != nil {
		if errors.Is(err, engine.ErrNothingToStart) {
			// Zero-length selection: take the expiry path immediately.
			notifier.PlayAlert()
			notifier.ShowExpiry(eng.State().Label)
			return nil
		}
		return err
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			eng.Reset()
			return ctx.Err()
		case now := <-ticker.C:
			eng.Tick(now)
		case <-done:
			return nil
		}
	}
}

// recordRecent persists a confirmed custom duration, logging rather
// than failing when the storage file cannot be written.
func recordRecent(st *storage.Storage, label string) {
	st.AddRecent(label)
	if err := st.Save(); err != nil {
		logrus.Debugf("unable to record recent duration: %v", err)
	}
}

// mergeUnique concatenates label lists preserving order and dropping
// duplicates.
func mergeUnique(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range lists {
		for _, v := range l {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func main() {
	Execute()
}
