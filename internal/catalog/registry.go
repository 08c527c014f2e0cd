package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the static editor catalogs: resize presets, fonts and stock videos.
// It is read-only after construction.
type Registry struct {
	presets     []Preset
	fonts       []Font
	defaultFont string
	videos      []StockVideo
}

// NewRegistry loads the embedded YAML catalogs
func NewRegistry() (*Registry, error) {
	r := &Registry{}

	var presets presetFile
	if err := loadFile("presets", &presets); err != nil {
		return nil, err
	}
	r.presets = presets.Presets

	var fonts fontFile
	if err := loadFile("fonts", &fonts); err != nil {
		return nil, err
	}
	r.fonts = fonts.Fonts
	r.defaultFont = fonts.Default

	var videos videoFile
	if err := loadFile("videos", &videos); err != nil {
		return nil, err
	}
	r.videos = videos.Videos

	if _, ok := r.FontByPostScriptName(r.defaultFont); !ok {
		return nil, fmt.Errorf("default font %q is not in the font catalog", r.defaultFont)
	}

	return r, nil
}

func loadFile(name string, dest interface{}) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return nil
}

// Presets returns the resize presets in menu order
func (r *Registry) Presets() []Preset {
	return append([]Preset(nil), r.presets...)
}

// Preset looks up a resize preset by name (e.g. "16:9")
func (r *Registry) Preset(name string) (Preset, bool) {
	for _, p := range r.presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Fonts returns every font variant
func (r *Registry) Fonts() []Font {
	return append([]Font(nil), r.fonts...)
}

// DefaultFont returns the font new text items use
func (r *Registry) DefaultFont() Font {
	f, _ := r.FontByPostScriptName(r.defaultFont)
	return f
}

// FontByPostScriptName finds a font variant by its PostScript name
func (r *Registry) FontByPostScriptName(name string) (Font, bool) {
	for _, f := range r.fonts {
		if f.PostScriptName == name {
			return f, true
		}
	}
	return Font{}, false
}

// RegularFont returns the Regular variant of a family
func (r *Registry) RegularFont(family string) (Font, bool) {
	for _, f := range r.fonts {
		if f.Family == family && strings.Contains(f.FullName, "Regular") {
			return f, true
		}
	}
	return Font{}, false
}

// HasVariant reports whether the family ships a variant whose full name contains style
func (r *Registry) HasVariant(family, style string) bool {
	for _, f := range r.fonts {
		if f.Family == family && strings.Contains(f.FullName, style) {
			return true
		}
	}
	return false
}

// StockVideos returns the stock video list
func (r *Registry) StockVideos() []StockVideo {
	return append([]StockVideo(nil), r.videos...)
}
