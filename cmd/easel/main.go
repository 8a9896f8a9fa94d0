package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Easel/config"
	"github.com/dixieflatline76/Easel/pkg/slideshow"
	"github.com/dixieflatline76/Easel/pkg/startup"
	"github.com/dixieflatline76/Easel/util/log"
)

var (
	startupFlag   bool
	minimizedFlag bool
)

// notify surfaces controller notices on the console. The engine keeps
// running either way; notices are advisory.
func notify(title, message string) {
	log.Printf("[%s] %s", title, message)
}

// newEngine wires a controller against the per-user settings, cache and
// history paths. The caller owns the returned history handle.
func newEngine() (*slideshow.Controller, *slideshow.History) {
	store := slideshow.NewStore(config.GetSettingsFilename())
	history, err := slideshow.OpenHistory(filepath.Join(config.GetPath(), config.HistoryFile))
	if err != nil {
		// The rotation log is an optional nicety; run without it.
		log.Printf("History unavailable: %v", err)
		history = nil
	}
	return slideshow.NewController(store, config.GetCachePath(), history, notify), history
}

// withEngine wires a controller for a one-shot command, runs fn, and
// releases the history handle so its file lock does not linger for the
// rest of the process.
func withEngine(fn func(*slideshow.Controller) error) error {
	controller, history := newEngine()
	if history != nil {
		defer history.Close()
	}
	return fn(controller)
}

// shouldAutoStart decides whether launching the engine begins the
// slideshow. A plain `easel` invocation is an explicit request to run it;
// a login launch (--startup) only resumes a slideshow that was running at
// last exit and leaves a paused one paused.
func shouldAutoStart(resumed, startupLaunch bool) bool {
	return !resumed && !startupLaunch
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "easel",
		Short: "Easel - desktop wallpaper slideshow",
		Long: "Easel rotates your desktop wallpaper through your image folders on a timer.\n\n" +
			"Running easel starts the slideshow and keeps it running until interrupted. " +
			"When launched with --startup, as the login entry does, it only resumes a " +
			"slideshow that was running at last exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&startupFlag, "startup", false, "indicates launch from the login startup entry")
	rootCmd.PersistentFlags().BoolVar(&minimizedFlag, "minimized", false, "start without console output beyond the log")

	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newSourcesCmd())
	rootCmd.AddCommand(newSingleCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStartupCmd())
	return rootCmd
}

// runEngine runs the slideshow until interrupted. A persisted running
// state resumes without user action; otherwise a manual launch starts the
// slideshow, while a --startup launch stays put so a paused slideshow
// remains paused across logins.
func runEngine() error {
	acquired, err := acquireLock()
	if err != nil {
		return fmt.Errorf("checking for a running instance: %w", err)
	}
	if !acquired {
		return fmt.Errorf("another instance of %s is already running", config.AppName)
	}
	defer releaseLock()

	controller, history := newEngine()
	if history != nil {
		defer history.Close()
	}

	controller.Resume()
	if shouldAutoStart(controller.IsRunning(), startupFlag) {
		if err := controller.Start(); err != nil {
			log.Printf("Slideshow not started: %v", err)
		}
	}
	log.Printf("%s up, slideshow %s", config.AppName, controller.State())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Printf("Shutting down")
	controller.Shutdown()
	return nil
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Rotate to the next wallpaper once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(controller *slideshow.Controller) error {
				if err := controller.Next(); err != nil {
					return err
				}
				cmd.Println(controller.Settings().LastShown)
				return nil
			})
		},
	}
}

func newSourcesCmd() *cobra.Command {
	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage the image source folders",
	}

	var noRecurse bool
	addCmd := &cobra.Command{
		Use:   "add [path]",
		Short: "Add a folder (or a single image file) as a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return withEngine(func(controller *slideshow.Controller) error {
				controller.AddSource(slideshow.Source{Path: path, IncludeSubfolders: !noRecurse})
				return nil
			})
		},
	}
	addCmd.Flags().BoolVar(&noRecurse, "no-recurse", false, "do not descend into subfolders")
	sourcesCmd.AddCommand(addCmd)

	sourcesCmd.AddCommand(&cobra.Command{
		Use:   "remove [path]",
		Short: "Remove a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return withEngine(func(controller *slideshow.Controller) error {
				if !controller.RemoveSource(path) {
					return fmt.Errorf("no source %s", path)
				}
				return nil
			})
		},
	})

	sourcesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the configured sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(controller *slideshow.Controller) error {
				for _, src := range controller.Settings().Sources {
					if src.IncludeSubfolders {
						cmd.Printf("%s (recursive)\n", src.Path)
					} else {
						cmd.Println(src.Path)
					}
				}
				return nil
			})
		},
	})
	return sourcesCmd
}

func newSingleCmd() *cobra.Command {
	singleCmd := &cobra.Command{
		Use:   "single",
		Short: "Pin a single image, overriding the sources",
	}
	singleCmd.AddCommand(&cobra.Command{
		Use:   "set [image]",
		Short: "Show only the given image until cleared",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return withEngine(func(controller *slideshow.Controller) error {
				controller.SetSingleImage(path)
				return nil
			})
		},
	})
	singleCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the single-image override",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(controller *slideshow.Controller) error {
				controller.ClearSingleImage()
				return nil
			})
		},
	})
	return singleCmd
}

// setOption applies one `config set` key. Unknown keys and unparsable
// values are reported without touching the settings file.
func setOption(controller *slideshow.Controller, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	}

	switch key {
	case "policy":
		policy, err := slideshow.ParsePolicy(value)
		if err != nil {
			return err
		}
		controller.SetPolicy(policy)
	case "style":
		style, err := slideshow.ParseStyle(value)
		if err != nil {
			return err
		}
		controller.SetStyle(style)
	case "interval":
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil || secs < 1 {
			return fmt.Errorf("interval expects a positive number of seconds, got %q", value)
		}
		controller.SetIntervalSecs(secs)
	case "auto-rotate":
		b, err := parseBool()
		if err != nil {
			return err
		}
		controller.SetAutoRotate(b)
	case "smart-fit":
		b, err := parseBool()
		if err != nil {
			return err
		}
		controller.SetSmartFit(b)
	case "change-on-start":
		b, err := parseBool()
		if err != nil {
			return err
		}
		controller.SetChangeOnStart(b)
	default:
		return fmt.Errorf("unknown option %q (policy, style, interval, auto-rotate, smart-fit, change-on-start)", key)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change the slideshow options",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change an option",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(controller *slideshow.Controller) error {
				return setOption(controller, args[0], args[1])
			})
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(controller *slideshow.Controller) error {
				data, err := json.MarshalIndent(controller.Settings(), "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
				return nil
			})
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Reset all settings to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(controller *slideshow.Controller) error {
				controller.Clear()
				return nil
			})
		},
	})
	return configCmd
}

func newHistoryCmd() *cobra.Command {
	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently applied wallpapers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := slideshow.OpenHistory(filepath.Join(config.GetPath(), config.HistoryFile))
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer history.Close()

			entries, err := history.Recent(limit)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				cmd.Printf("%s  %s\n", entry.ShownAt.Local().Format("2006-01-02 15:04:05"), entry.Path)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show")
	return historyCmd
}

func newStartupCmd() *cobra.Command {
	startupCmd := &cobra.Command{
		Use:   "startup",
		Short: "Manage launching the slideshow at login",
	}

	var minimized bool
	onCmd := &cobra.Command{
		Use:   "on",
		Short: "Register the slideshow to start at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := startup.Enable(minimized); err != nil {
				return err
			}
			return withEngine(func(controller *slideshow.Controller) error {
				controller.SetRunOnStartup(true)
				controller.SetStartMinimized(minimized)
				return nil
			})
		},
	}
	onCmd.Flags().BoolVar(&minimized, "minimized", false, "start without a visible window")
	startupCmd.AddCommand(onCmd)

	startupCmd.AddCommand(&cobra.Command{
		Use:   "off",
		Short: "Remove the login startup entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := startup.Disable(); err != nil {
				return err
			}
			return withEngine(func(controller *slideshow.Controller) error {
				controller.SetRunOnStartup(false)
				return nil
			})
		},
	})

	startupCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a login startup entry exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := startup.IsEnabled()
			if err != nil {
				return err
			}
			if enabled {
				cmd.Println("enabled")
			} else {
				cmd.Println("disabled")
			}
			return nil
		},
	})
	return startupCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
