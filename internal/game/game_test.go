package game

import (
	"errors"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"github.com/Faultbox/kopimap/internal/assets"
	"github.com/Faultbox/kopimap/internal/config"
	"github.com/Faultbox/kopimap/internal/engine/audio"
	"github.com/Faultbox/kopimap/internal/engine/input"
	"github.com/Faultbox/kopimap/internal/engine/shader/shaders"
	"github.com/Faultbox/kopimap/internal/game/kopi"
	kmath "github.com/Faultbox/kopimap/pkg/math"
)

func testAssets(extra map[string]string) *assets.Manager {
	files := fstest.MapFS{
		"world_map.png": {Data: []byte("map")},
		"kopi.png":      {Data: []byte("kopi")},
		"sound1.wav":    {Data: []byte("s1")},
		"sound2.wav":    {Data: []byte("s2")},
		"sound3.wav":    {Data: []byte("s3")},
		"sound4.wav":    {Data: []byte("s4")},
	}
	for name, data := range extra {
		files[name] = &fstest.MapFile{Data: []byte(data)}
	}
	m := assets.NewManager()
	m.AddSource(files)
	return m
}

func TestLoadResourcesDefaults(t *testing.T) {
	res, err := loadResources(testAssets(nil), config.Default())
	if err != nil {
		t.Fatalf("loadResources: %v", err)
	}

	if res.mapVertex != shaders.MapVertexShader || res.kopiVertex != shaders.KopiVertexShader ||
		res.fragment != shaders.QuadFragmentShader {
		t.Error("empty shader paths should select the embedded sources")
	}
	if res.mapImage.Name != "world_map.png" || string(res.mapImage.Data) != "map" {
		t.Errorf("map image = %q %q", res.mapImage.Name, res.mapImage.Data)
	}
	if string(res.kopiImage.Data) != "kopi" {
		t.Errorf("kopi image = %q", res.kopiImage.Data)
	}
	if len(res.sounds) != config.SoundCount {
		t.Fatalf("sounds = %d, want %d", len(res.sounds), config.SoundCount)
	}
	for i, want := range []string{"s1", "s2", "s3", "s4"} {
		if string(res.sounds[i].data) != want {
			t.Errorf("sound %d = %q, want %q", i, res.sounds[i].data, want)
		}
	}
}

func TestLoadResourcesShaderOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Shaders.KopiVertex = "shaders/custom.vert"

	res, err := loadResources(testAssets(map[string]string{"shaders/custom.vert": "#version 410 core\n"}), cfg)
	if err != nil {
		t.Fatalf("loadResources: %v", err)
	}
	if res.kopiVertex != "#version 410 core\n" {
		t.Errorf("kopi vertex = %q", res.kopiVertex)
	}
	if res.mapVertex != shaders.MapVertexShader {
		t.Error("map vertex should stay embedded")
	}
}

func TestLoadResourcesMissing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"map", func(c *config.Config) { c.Assets.MapTexture = "nope.png" }},
		{"kopi", func(c *config.Config) { c.Assets.KopiTexture = "nope.png" }},
		{"sound", func(c *config.Config) { c.Audio.Sounds[2] = "nope.wav" }},
		{"shader", func(c *config.Config) { c.Assets.Shaders.Fragment = "nope.frag" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if _, err := loadResources(testAssets(nil), cfg); !errors.Is(err, assets.ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

type recordingPlayer struct {
	calls [][2]int
}

func (p *recordingPlayer) Play(from, to int) {
	p.calls = append(p.calls, [2]int{from, to})
}

func newTestGame() (*Game, *recordingPlayer) {
	g := &Game{cfg: config.Default(), running: true}
	p := &recordingPlayer{}
	g.setupController(p)
	g.switcher.Start()
	return g, p
}

func TestHandleEventDragSwitchesClip(t *testing.T) {
	g, p := newTestGame()
	vp := kmath.NewViewport(1200, 600)

	events := []input.Event{
		{Type: input.EventMouseDown, Button: input.ButtonPrimary, MouseX: 600, MouseY: 300},
		{Type: input.EventMouseMove, MouseX: 300, MouseY: 300},
		{Type: input.EventMouseMove, MouseX: 300, MouseY: 450},
		{Type: input.EventMouseUp, Button: input.ButtonPrimary, MouseX: 300, MouseY: 450},
	}
	for _, ev := range events {
		g.handleEvent(ev, vp)
	}

	s := g.controller.State()
	if s.Offset.X != -0.5 || s.Offset.Y != -0.5 {
		t.Errorf("offset = %+v, want (-0.5, -0.5)", s.Offset)
	}
	if g.switcher.Active() != kopi.BottomLeft {
		t.Errorf("quadrant = %v, want BottomLeft", g.switcher.Active())
	}
	want := [][2]int{{-1, int(kopi.TopRight)}, {int(kopi.TopRight), int(kopi.BottomLeft)}}
	if len(p.calls) != len(want) || p.calls[0] != want[0] || p.calls[1] != want[1] {
		t.Errorf("player calls = %v, want %v", p.calls, want)
	}
}

func TestHandleEventRotate(t *testing.T) {
	g, _ := newTestGame()
	vp := kmath.NewViewport(1200, 600)

	g.handleEvent(input.Event{Type: input.EventMouseDown, Button: input.ButtonSecondary, MouseX: 600, MouseY: 300}, vp)
	if got := g.controller.State().Angle; got != kopi.RotateStep {
		t.Errorf("angle = %v, want %v", got, kopi.RotateStep)
	}

	// Middle button does nothing.
	g.handleEvent(input.Event{Type: input.EventMouseDown, Button: input.ButtonOther, MouseX: 600, MouseY: 300}, vp)
	if g.controller.Dragging() || g.controller.State().Angle != kopi.RotateStep {
		t.Error("other buttons should be ignored")
	}
}

func TestHandleEventFrame(t *testing.T) {
	g, _ := newTestGame()
	vp := kmath.NewViewport(1200, 600)

	g.handleEvent(input.Event{Type: input.EventMouseDown, Button: input.ButtonPrimary, MouseX: 600, MouseY: 300}, vp)
	g.handleEvent(input.Event{Type: input.EventMouseMove, MouseX: 900, MouseY: 150}, vp)

	f := g.frame(vp)
	if f.OffsetX != 0.5 || f.OffsetY != 0.5 {
		t.Errorf("frame offset = (%v, %v), want (0.5, 0.5)", f.OffsetX, f.OffsetY)
	}
	if f.Aspect != 0.5 {
		t.Errorf("frame aspect = %v, want 0.5", f.Aspect)
	}
}

func TestHandleEventStops(t *testing.T) {
	tests := []struct {
		name string
		ev   input.Event
	}{
		{"quit", input.Event{Type: input.EventQuit}},
		{"escape", input.Event{Type: input.EventKeyDown, Key: input.KeyEscape}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame()
			g.handleEvent(tt.ev, kmath.NewViewport(1200, 600))
			if g.running {
				t.Error("game should stop")
			}
		})
	}
}

func TestHandleEventScreenshotDeferred(t *testing.T) {
	g, _ := newTestGame()
	g.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyScreenshot}, kmath.NewViewport(1200, 600))
	if !g.screenshotPending {
		t.Error("F12 should request a screenshot")
	}
	if !g.running {
		t.Error("F12 should not stop the game")
	}
}

func TestHandleEventResizeUpdatesViewport(t *testing.T) {
	g, _ := newTestGame()
	vp := kmath.NewViewport(1200, 600)

	events := []input.Event{
		{Type: input.EventWindowResize, Width: 600, Height: 600},
		{Type: input.EventMouseDown, Button: input.ButtonPrimary, MouseX: 300, MouseY: 300},
		{Type: input.EventMouseMove, MouseX: 450, MouseY: 300},
	}
	for _, ev := range events {
		vp = g.handleEvent(ev, vp)
	}

	if vp != kmath.NewViewport(600, 600) {
		t.Errorf("viewport = %+v, want 600x600", vp)
	}
	if !g.controller.Dragging() {
		t.Fatal("press at the new window centre should hit the icon")
	}
	if got := g.controller.State().Offset.X; got != 0.5 {
		t.Errorf("offset x = %v, want 0.5 in the resized window", got)
	}
}

func TestCloseReleasesClips(t *testing.T) {
	m := audio.New()
	g := &Game{
		cfg:    config.Default(),
		audio:  m,
		assets: testAssets(nil),
		log:    zap.NewNop(),
	}
	if _, err := g.assets.Load("kopi.png"); err != nil {
		t.Fatal(err)
	}

	g.Close()
	if m.ClipCount() != 0 || m.Active() != -1 {
		t.Errorf("clips left after Close: %d", m.ClipCount())
	}
	if g.audio != nil || g.assets != nil {
		t.Error("Close should drop its references")
	}
}
