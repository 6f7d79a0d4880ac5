package integrations

import (
	"sort"
)

// ReaderProfile describes the screen an exported book is prepared for.
type ReaderProfile struct {
	Name      string
	Width     int
	Height    int
	DPI       int
	Grayscale bool
}

const DefaultProfile = "color"

// Profiles are the export targets accepted by the exporter.
var Profiles = map[string]ReaderProfile{
	"color": {
		Name:   "Color screen",
		Width:  800,
		Height: 600,
		DPI:    96,
	},
	"tablet": {
		Name:   "Tablet",
		Width:  1200,
		Height: 1920,
		DPI:    216,
	},
	"ereader": {
		Name:      "E-ink reader",
		Width:     758,
		Height:    1024,
		DPI:       212,
		Grayscale: true,
	},
	"ereader-hd": {
		Name:      "E-ink reader (300 dpi)",
		Width:     1072,
		Height:    1448,
		DPI:       300,
		Grayscale: true,
	},
}

// GetProfile returns the profile registered under id.
func GetProfile(id string) (ReaderProfile, bool) {
	if id == "" {
		id = DefaultProfile
	}
	p, ok := Profiles[id]
	return p, ok
}

// ProfileIDs returns the registered profile ids in alphabetical order.
func ProfileIDs() []string {
	ids := make([]string, 0, len(Profiles))
	for id := range Profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ImageSettings controls how illustrations are prepared for a profile.
type ImageSettings struct {
	MaxWidth  int
	MaxHeight int
	Quality   int     // JPEG quality (1-100)
	Grayscale bool
	Contrast  float64 // 1.0 = no change
	Gamma     float64 // 1.0 = no change
	Format    string  // "jpeg" or "png"
}

// Settings returns the recommended image settings for the profile.
func (p ReaderProfile) Settings() ImageSettings {
	s := ImageSettings{
		MaxWidth:  p.Width,
		MaxHeight: p.Height,
		Quality:   85,
		Grayscale: p.Grayscale,
		Contrast:  1.0,
		Gamma:     1.0,
		Format:    "png",
	}

	if p.DPI >= 300 {
		s.Quality = 90
	}

	// e-ink panels wash out flat pastel colors
	if p.Grayscale {
		s.Contrast = 1.2
		s.Gamma = 0.9
		s.Format = "jpeg"
	}
	return s
}
