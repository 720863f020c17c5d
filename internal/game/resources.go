package game

import (
	"fmt"

	"github.com/Faultbox/kopimap/internal/assets"
	"github.com/Faultbox/kopimap/internal/config"
	"github.com/Faultbox/kopimap/internal/engine/renderer"
	"github.com/Faultbox/kopimap/internal/engine/shader/shaders"
)

// resources holds every file the demo needs, read before any window or GL
// state exists.
type resources struct {
	mapVertex  string
	kopiVertex string
	fragment   string
	mapImage   renderer.Image
	kopiImage  renderer.Image
	sounds     []clipFile
}

type clipFile struct {
	name string
	data []byte
}

// loadResources reads shaders, textures and clips through a. Shader paths
// left empty fall back to the embedded sources.
func loadResources(a *assets.Manager, cfg *config.Config) (*resources, error) {
	res := &resources{}

	var err error
	shaderFiles := []struct {
		path     string
		fallback string
		dst      *string
	}{
		{cfg.Assets.Shaders.MapVertex, shaders.MapVertexShader, &res.mapVertex},
		{cfg.Assets.Shaders.KopiVertex, shaders.KopiVertexShader, &res.kopiVertex},
		{cfg.Assets.Shaders.Fragment, shaders.QuadFragmentShader, &res.fragment},
	}
	for _, sf := range shaderFiles {
		*sf.dst, err = loadShaderSource(a, sf.path, sf.fallback)
		if err != nil {
			return nil, err
		}
	}

	if res.mapImage, err = loadFile(a, cfg.Assets.MapTexture); err != nil {
		return nil, err
	}
	if res.kopiImage, err = loadFile(a, cfg.Assets.KopiTexture); err != nil {
		return nil, err
	}

	for _, name := range cfg.Audio.Sounds {
		data, err := a.Load(name)
		if err != nil {
			return nil, err
		}
		res.sounds = append(res.sounds, clipFile{name: name, data: data})
	}
	return res, nil
}

func loadShaderSource(a *assets.Manager, path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := a.Load(path)
	if err != nil {
		return "", fmt.Errorf("shader source: %w", err)
	}
	return string(data), nil
}

func loadFile(a *assets.Manager, name string) (renderer.Image, error) {
	data, err := a.Load(name)
	if err != nil {
		return renderer.Image{}, err
	}
	return renderer.Image{Name: name, Data: data}, nil
}
