// Package game wires the window, renderer, audio and icon controller into
// the demo's main loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/kopimap/internal/assets"
	"github.com/Faultbox/kopimap/internal/config"
	"github.com/Faultbox/kopimap/internal/engine/audio"
	"github.com/Faultbox/kopimap/internal/engine/debug"
	"github.com/Faultbox/kopimap/internal/engine/input"
	"github.com/Faultbox/kopimap/internal/engine/renderer"
	"github.com/Faultbox/kopimap/internal/engine/window"
	"github.com/Faultbox/kopimap/internal/game/kopi"
	"github.com/Faultbox/kopimap/internal/logger"
	kmath "github.com/Faultbox/kopimap/pkg/math"
)

// Game is the main demo instance.
type Game struct {
	cfg     *config.Config
	running bool

	// Set by F12, taken after the next draw and before the swap.
	screenshotPending bool

	assets      *assets.Manager
	audio       *audio.Manager
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	screenshots *debug.ScreenshotCapture

	switcher   *kopi.Switcher
	controller *kopi.Controller

	log *zap.Logger
}

// New loads every asset, opens the audio device and a hidden window, builds
// the GPU resources and finally shows the window. Any failure releases what
// was created so far.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:         cfg,
		assets:      assets.NewDirManager(cfg.Assets.Root),
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "kopimap"),
		log:         logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	if err := g.init(); err != nil {
		g.Close()
		return nil, err
	}

	g.log.Info("initialized")
	return g, nil
}

func (g *Game) init() error {
	res, err := loadResources(g.assets, g.cfg)
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	g.window, err = window.New(window.Config{
		Title:  g.cfg.Window.Title,
		Width:  g.cfg.Window.Width,
		Height: g.cfg.Window.Height,
		VSync:  g.cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context.
	dw, dh := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:              dw,
		Height:             dh,
		MapVertexShader:    res.mapVertex,
		KopiVertexShader:   res.kopiVertex,
		QuadFragmentShader: res.fragment,
		MapImage:           res.mapImage,
		KopiImage:          res.kopiImage,
		KopiHalfWidth:      kopi.HalfWidth,
		KopiHalfHeight:     kopi.HalfHeight,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, clip := range res.sounds {
		if _, err := g.audio.LoadClip(clip.name, clip.data); err != nil {
			return fmt.Errorf("audio: %w", err)
		}
	}
	g.audio.SetMasterVolume(g.cfg.Audio.MasterVolume)
	g.audio.SetMuted(g.cfg.Audio.Muted)

	g.setupController(g.audio)
	g.switcher.Start()

	g.window.Show()
	return nil
}

// setupController connects the icon controller to p, starting in the
// default quadrant.
func (g *Game) setupController(p kopi.Player) {
	g.switcher = kopi.NewSwitcher(p, kopi.NewState().Active)
	g.controller = kopi.NewController(g.switcher)
}

// Run renders frames and dispatches input until the window closes or
// Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting main loop")

	for g.running {
		vp := g.viewport()
		g.renderer.Draw(g.frame(vp))
		if g.screenshotPending {
			g.screenshotPending = false
			g.screenshot()
		}
		g.window.SwapBuffers()

		if g.input.Update() {
			g.running = false
		}
		for _, event := range g.input.Events() {
			vp = g.handleEvent(event, vp)
		}

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			g.log.Debug("fps",
				zap.Float64("fps", float64(frameCount)/elapsed.Seconds()),
				zap.Stringer("quadrant", g.switcher.Active()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("main loop stopped")
	return nil
}

// viewport returns the window size in the coordinates mouse events use.
func (g *Game) viewport() kmath.Viewport {
	w, h := g.window.GetSize()
	return kmath.NewViewport(w, h)
}

// frame converts the icon state into shader inputs.
func (g *Game) frame(vp kmath.Viewport) renderer.Frame {
	s := g.controller.State()
	return renderer.Frame{
		OffsetX: s.Offset.X,
		OffsetY: s.Offset.Y,
		Angle:   s.Angle,
		Aspect:  vp.Aspect(),
	}
}

// handleEvent applies one input event. vp is the window size the event
// coordinates refer to; the returned viewport applies to later events.
func (g *Game) handleEvent(ev input.Event, vp kmath.Viewport) kmath.Viewport {
	pos := kmath.Vec2{X: float32(ev.MouseX), Y: float32(ev.MouseY)}

	switch ev.Type {
	case input.EventQuit:
		g.running = false
	case input.EventKeyDown:
		switch ev.Key {
		case input.KeyEscape:
			g.running = false
		case input.KeyScreenshot:
			g.screenshotPending = true
		}
	case input.EventWindowResize:
		vp = kmath.NewViewport(ev.Width, ev.Height)
		if g.renderer != nil && g.window != nil {
			g.renderer.Resize(g.window.DrawableSize())
		}
	case input.EventMouseDown:
		switch ev.Button {
		case input.ButtonPrimary:
			g.controller.PressPrimary(pos, vp)
		case input.ButtonSecondary:
			g.controller.PressSecondary(pos, vp)
		}
	case input.EventMouseUp:
		if ev.Button == input.ButtonPrimary {
			g.controller.ReleasePrimary()
		}
	case input.EventMouseMove:
		g.controller.Move(pos, vp)
	}
	return vp
}

// screenshot saves the last rendered frame. Failures are logged only.
func (g *Game) screenshot() {
	if g.renderer == nil {
		return
	}
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", name))
}

// Close releases resources in reverse creation order.
func (g *Game) Close() {
	g.log.Info("closing")

	// Clips were loaded last, so they go first.
	if g.audio != nil {
		g.audio.ReleaseClips()
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	if g.audio != nil {
		g.audio.Close()
		g.audio = nil
	}
	if g.assets != nil {
		hits, misses := g.assets.CacheStats()
		g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.assets.Close()
		g.assets = nil
	}
}
