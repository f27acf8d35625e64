package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bloom"
	"github.com/phanxgames/bloom/config"
	"github.com/phanxgames/bloom/ecs"
	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/timeline"
)

// options are the flags shared by every command.
type options struct {
	configPath string
	verbose    bool
	seed       uint64
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "garden",
		Short:        "An animated greeting garden",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the config, then a fresh one)")

	run := newRunCmd(opts)
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())
	root.AddCommand(run, newComposeCmd(opts), newTimelineCmd())
	return root
}

// loadConfig reads the config file if one was given and applies the seed
// flag.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, nil
}

// --- run ---

type runFlags struct {
	width, height int
	script        string
	showFPS       bool
	debug         bool
}

func newRunCmd(opts *options) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the garden window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGarden(cmd, opts, f)
		},
	}
	cmd.Flags().IntVar(&f.width, "width", 0, "window width (overrides config)")
	cmd.Flags().IntVar(&f.height, "height", 0, "window height (overrides config)")
	cmd.Flags().StringVar(&f.script, "script", "", "YAML test script to drive the garden")
	cmd.Flags().BoolVar(&f.showFPS, "fps", false, "show the FPS counter")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable scene debug checks and frame stats")
	return cmd
}

func runGarden(cmd *cobra.Command, opts *options, f *runFlags) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if f.width > 0 {
		cfg.Window.Width = f.width
	}
	if f.height > 0 {
		cfg.Window.Height = f.height
	}
	cfg.ShowFPS = cfg.ShowFPS || f.showFPS
	cfg.Debug = cfg.Debug || f.debug
	if cfg.Debug && !opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sets, err := loadSets(cfg.Timelines)
	if err != nil {
		return err
	}

	var script *bloom.TestRunner
	if f.script != "" {
		data, err := os.ReadFile(f.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if script, err = bloom.LoadTestScript(data); err != nil {
			return err
		}
	}

	world := donburi.NewWorld()
	tally := ecs.Track(world)

	logger.Info("starting garden", "size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height), "seed", cfg.Seed)
	err = bloom.Run(bloom.RunConfig{
		Title:          cfg.Window.Title,
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		Resizable:      cfg.Window.Resizable,
		ShowFPS:        cfg.ShowFPS,
		Debug:          cfg.Debug,
		Logger:         logger,
		Rand:           layout.NewRand(cfg.Seed),
		ResizeDebounce: cfg.ResizeDebounce,
		Messages:       cfg.Messages,
		Sets:           sets,
		Script:         script,
		Store:          ecs.NewDonburiStore(world),
		OnUpdate: func() {
			ecs.InteractionEventType.ProcessEvents(world)
		},
	})

	t := ecs.TallyComponent.Get(tally)
	logger.Info("garden closed", "confirms", t.Confirms, "clicks", len(t.Clicks))
	return err
}

// loadSets reads the timeline override files named by the config.
func loadSets(paths map[string]string) (map[string]timeline.Set, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	sets := make(map[string]timeline.Set, len(paths))
	for scene, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read timelines for %s: %w", scene, err)
		}
		s, err := timeline.UnmarshalSet(data)
		if err != nil {
			return nil, fmt.Errorf("timelines for %s: %w", scene, err)
		}
		if s.Entrance.Scene != scene {
			return nil, fmt.Errorf("timelines for %s: file is for scene %q", scene, s.Entrance.Scene)
		}
		sets[scene] = s
	}
	return sets, nil
}

// --- compose ---

func newComposeCmd(opts *options) *cobra.Command {
	var sizes string
	var asYAML bool
	cmd := &cobra.Command{
		Use:       "compose <scene>",
		Short:     "Compose a scene for one or more viewports and summarize it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: garden.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			viewports, err := parseSizes(sizes)
			if err != nil {
				return err
			}
			scenes, err := composeAll(cmd.Context(), args[0], viewports, cfg)
			if err != nil {
				return err
			}
			if asYAML {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(scenes)
			}
			printSummary(cmd.OutOrStdout(), scenes)
			return nil
		},
	}
	cmd.Flags().StringVar(&sizes, "sizes", "1024x768", "comma-separated viewports, e.g. 390x844,1440x900")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "dump the full scenes as YAML")
	return cmd
}

// composeAll composes the scene once per viewport, concurrently. Each
// viewport draws from its own source seeded from the config seed, so the
// output does not depend on scheduling.
func composeAll(ctx context.Context, name string, viewports []layout.Viewport, cfg *config.Config) ([]*garden.Scene, error) {
	logger := loggerFromContext(ctx)
	scenes := make([]*garden.Scene, len(viewports))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range viewports {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := garden.Compose(name, v, layout.NewRand(cfg.Seed+uint64(i)), cfg.MessagesFor(name))
			if err != nil {
				return err
			}
			logger.Debug("composed", "scene", name, "width", v.Width, "height", v.Height, "elements", len(s.Elements))
			scenes[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenes, nil
}

// parseSizes reads "WxH,WxH" into viewports.
func parseSizes(s string) ([]layout.Viewport, error) {
	var out []layout.Viewport
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ws, hs, ok := strings.Cut(part, "x")
		if !ok {
			return nil, fmt.Errorf("size %q: want WIDTHxHEIGHT", part)
		}
		w, err := strconv.ParseFloat(ws, 64)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", part, err)
		}
		h, err := strconv.ParseFloat(hs, 64)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", part, err)
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("size %q: must be positive", part)
		}
		out = append(out, layout.Viewport{Width: w, Height: h})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return out, nil
}

// --- timeline ---

func newTimelineCmd() *cobra.Command {
	var check string
	cmd := &cobra.Command{
		Use:   "timeline [scene]",
		Short: "Print a scene's entrance and idle loops, or validate an override file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if check != "" {
				data, err := os.ReadFile(check)
				if err != nil {
					return err
				}
				s, err := timeline.UnmarshalSet(data)
				if err != nil {
					return err
				}
				logger.Info("timelines ok", "scene", s.Entrance.Scene,
					"entries", len(s.Entrance.Entries), "loops", len(s.Idle),
					"duration", s.Entrance.Duration())
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("scene name required, one of %s", strings.Join(garden.Names, ", "))
			}
			set, err := timeline.ForScene(args[0])
			if err != nil {
				return err
			}
			data, err := timeline.MarshalSet(set)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&check, "check", "", "validate a timeline override file instead of printing")
	return cmd
}

// --- logging ---

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
