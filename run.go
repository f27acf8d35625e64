package bloom

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bloom/config"
	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
	"github.com/phanxgames/bloom/stage"
	"github.com/phanxgames/bloom/timeline"
)

// backgrounds is the clear color behind each scene.
var backgrounds = map[string]Color{
	garden.Main: Hex("#0D1B2A"),
	garden.Rose: Hex("#2A0A1F"),
}

// RunConfig configures Run and NewGarden.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
	Debug     bool

	// Logger receives engine, controller and scene logs. Nil discards.
	Logger *log.Logger
	// Rand feeds composition, loop jitter and particles. Nil uses the shared
	// source.
	Rand layout.Rand
	// ResizeDebounce is the quiet interval before a resize rebuilds the
	// scene. Zero uses config.DefaultResizeDebounce.
	ResizeDebounce time.Duration
	// Messages overrides the greeting lines per scene.
	Messages map[string][]string
	// Sets overrides the entrance and idle loops per scene.
	Sets map[string]timeline.Set
	// Script, when set, drives the garden and ends Run once it finishes.
	Script *TestRunner
	// Store receives interaction events.
	Store EntityStore
	// OnUpdate runs at the end of every tick.
	OnUpdate func()
}

// Garden wires a Scene, an Engine and a stage.Controller into an
// ebiten.Game. Use Run to open a window, or NewGarden and Step to drive it
// headless.
type Garden struct {
	Scene      *Scene
	Engine     *Engine
	Controller *stage.Controller

	cfg     RunConfig
	width   int
	height  int
	started bool
	window  bool
}

// NewGarden builds the game. The main scene is composed on the first Update
// or an explicit Start.
func NewGarden(cfg RunConfig) *Garden {
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	debounce := cfg.ResizeDebounce
	if debounce == 0 {
		debounce = config.DefaultResizeDebounce
	}

	scene := NewScene()
	scene.SetLogger(logger.WithPrefix("scene"))
	scene.SetDebugMode(cfg.Debug)
	if cfg.Store != nil {
		scene.SetEntityStore(cfg.Store)
	}

	engine := NewEngine(scene, EngineOptions{Logger: logger.WithPrefix("engine"), Rand: cfg.Rand})
	ctrl := stage.NewController(stage.Options{
		Engine:   engine,
		Renderer: engine,
		Rand:     cfg.Rand,
		Logger:   logger.WithPrefix("stage"),
		Debounce: debounce,
		Messages: cfg.Messages,
		Sets:     cfg.Sets,
	})
	engine.OnConfirm = ctrl.Confirm

	g := &Garden{
		Scene:      scene,
		Engine:     engine,
		Controller: ctrl,
		cfg:        cfg,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	scene.OnResize = func(w, h float64) {
		if g.window {
			ebiten.SetWindowSize(int(w), int(h))
		}
		g.resize(int(w), int(h))
	}
	scene.ScreenshotScene = ctrl.Scene
	if cfg.Script != nil {
		scene.SetTestRunner(cfg.Script)
	}
	if cfg.ShowFPS {
		fps := NewFPSWidget()
		fps.SetPosition(48, 24)
		scene.Root().AddChild(fps)
	}
	return g
}

// Start composes the main scene for the current size and plays its
// entrance. Update calls it on the first tick.
func (g *Garden) Start() error {
	if g.started {
		return nil
	}
	g.started = true
	return g.Controller.Start(g.viewport())
}

func (g *Garden) viewport() layout.Viewport {
	return layout.Viewport{Width: float64(g.width), Height: float64(g.height)}
}

func (g *Garden) resize(w, h int) {
	if w <= 0 || h <= 0 || (w == g.width && h == g.height) {
		return
	}
	g.width, g.height = w, h
	if g.started {
		g.Controller.Resize(g.viewport())
	}
}

// Step advances the whole garden by dt seconds without reading the window.
func (g *Garden) Step(dt float64) error {
	if err := g.Start(); err != nil {
		return err
	}
	g.Scene.Step(dt)
	g.advance(dt)
	return nil
}

func (g *Garden) advance(dt float64) {
	g.Engine.Update(dt)
	g.Controller.Update(time.Duration(dt * float64(time.Second)))
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate()
	}
}

// Update implements ebiten.Game.
func (g *Garden) Update() error {
	if err := g.Start(); err != nil {
		return err
	}
	g.Scene.Update()
	g.advance(1.0 / float64(ebiten.TPS()))
	if g.cfg.Script != nil && g.cfg.Script.Done() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Garden) Draw(screen *ebiten.Image) {
	bg, ok := backgrounds[g.Controller.Scene()]
	if !ok {
		bg = backgrounds[garden.Main]
	}
	screen.Fill(bg.toRGBA())
	g.Scene.Draw(screen)
}

// Layout implements ebiten.Game. A change of the outside size is forwarded
// to the controller as a resize.
func (g *Garden) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return g.width, g.height
}

// Run opens a window and runs the garden until it is closed or its script
// finishes.
func Run(cfg RunConfig) error {
	g := NewGarden(cfg)
	g.window = true

	title := cfg.Title
	if title == "" {
		title = "bloom"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
