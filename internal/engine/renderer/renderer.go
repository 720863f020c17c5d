// Package renderer draws the map background and the kopi icon.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/kopimap/internal/engine/mesh"
	"github.com/Faultbox/kopimap/internal/engine/shader"
	"github.com/Faultbox/kopimap/internal/engine/texture"
	"github.com/Faultbox/kopimap/internal/logger"
)

// Image is an encoded image and the name it was loaded under.
type Image struct {
	Name string
	Data []byte
}

// Config holds everything the renderer needs at start-up.
type Config struct {
	Width, Height int

	MapVertexShader    string
	KopiVertexShader   string
	QuadFragmentShader string

	MapImage  Image
	KopiImage Image

	// Icon half-extents before aspect correction.
	KopiHalfWidth, KopiHalfHeight float32
}

// Frame is the per-frame icon state fed to the kopi shader.
type Frame struct {
	OffsetX, OffsetY float32
	Angle            float32
	Aspect           float32 // window height / width
}

// Renderer owns every GPU resource of the demo.
type Renderer struct {
	width, height int

	mapProgram  *shader.Program
	kopiProgram *shader.Program

	mapQuad  *mesh.Mesh
	kopiQuad *mesh.Mesh

	mapTexture  *texture.Texture
	kopiTexture *texture.Texture
}

// New loads GL entry points and creates programs, geometry and textures.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("maxTextureSize", texture.MaxSize()),
	)

	r := &Renderer{}
	if err := r.init(cfg); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init(cfg Config) error {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	r.mapProgram, err = shader.New("map", cfg.MapVertexShader, cfg.QuadFragmentShader)
	if err != nil {
		return err
	}
	r.kopiProgram, err = shader.New("kopi", cfg.KopiVertexShader, cfg.QuadFragmentShader)
	if err != nil {
		return err
	}
	if err := r.kopiProgram.Require("offset", "angle", "aspect"); err != nil {
		return err
	}

	r.mapQuad = mesh.NewQuad(1, 1)
	r.kopiQuad = mesh.NewQuad(cfg.KopiHalfWidth, cfg.KopiHalfHeight)

	r.mapTexture, err = loadTexture(cfg.MapImage)
	if err != nil {
		return err
	}
	r.kopiTexture, err = loadTexture(cfg.KopiImage)
	if err != nil {
		return err
	}

	// Both programs sample unit 0.
	for _, p := range []*shader.Program{r.mapProgram, r.kopiProgram} {
		p.Use()
		p.SetInt("tex", 0)
	}
	gl.UseProgram(0)

	r.Resize(cfg.Width, cfg.Height)
	return nil
}

func loadTexture(img Image) (*texture.Texture, error) {
	if len(img.Data) == 0 {
		return nil, errors.New("no image data for " + img.Name)
	}
	t, err := texture.Load(img.Name, img.Data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", img.Name, err)
	}
	logger.Debug("texture loaded",
		zap.String("name", img.Name),
		zap.Int("width", t.Width),
		zap.Int("height", t.Height),
	)
	return t, nil
}

// Close releases GPU resources in reverse creation order.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.kopiTexture != nil {
		r.kopiTexture.Delete()
	}
	if r.mapTexture != nil {
		r.mapTexture.Delete()
	}
	if r.kopiQuad != nil {
		r.kopiQuad.Delete()
	}
	if r.mapQuad != nil {
		r.mapQuad.Delete()
	}
	if r.kopiProgram != nil {
		r.kopiProgram.Delete()
	}
	if r.mapProgram != nil {
		r.mapProgram.Delete()
	}
}

// Resize handles drawable size changes.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders one frame: clear, map, then icon.
func (r *Renderer) Draw(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.mapProgram.Use()
	r.mapTexture.Bind(0)
	r.mapQuad.Draw()

	r.kopiProgram.Use()
	r.kopiProgram.SetVec2("offset", f.OffsetX, f.OffsetY)
	r.kopiProgram.SetFloat("angle", f.Angle)
	r.kopiProgram.SetFloat("aspect", f.Aspect)
	r.kopiTexture.Bind(0)
	r.kopiQuad.Draw()
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.width, r.height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
