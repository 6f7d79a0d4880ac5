package story

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// PlaceholderScheme marks illustration references that are rendered locally
// instead of fetched: placeholder://800x600/87CEEB/FFFFFF?text=Magical+Forest
const PlaceholderScheme = "placeholder"

// MaxPlaceholderSize bounds each side of a placeholder illustration in pixels.
const MaxPlaceholderSize = 4096

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

type Placeholder struct {
	Width      int
	Height     int
	Background string // RRGGBB
	Foreground string // RRGGBB
	Text       string
}

func (p Placeholder) String() string {
	u := url.URL{
		Scheme:   PlaceholderScheme,
		Host:     fmt.Sprintf("%dx%d", p.Width, p.Height),
		Path:     "/" + strings.ToUpper(p.Background) + "/" + strings.ToUpper(p.Foreground),
		RawQuery: url.Values{"text": {p.Text}}.Encode(),
	}
	return u.String()
}

// ParsePlaceholder decodes a placeholder:// reference.
func ParsePlaceholder(ref string) (Placeholder, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return Placeholder{}, fmt.Errorf("%w: illustration %q: %v", ErrValidation, ref, err)
	}
	if u.Scheme != PlaceholderScheme {
		return Placeholder{}, fmt.Errorf("%w: illustration %q is not a placeholder", ErrValidation, ref)
	}

	w, h, ok := strings.Cut(u.Host, "x")
	width, werr := strconv.Atoi(w)
	height, herr := strconv.Atoi(h)
	if !ok || werr != nil || herr != nil || width <= 0 || height <= 0 {
		return Placeholder{}, fmt.Errorf("%w: illustration %q has bad size", ErrValidation, ref)
	}
	if width > MaxPlaceholderSize || height > MaxPlaceholderSize {
		return Placeholder{}, fmt.Errorf("%w: illustration %q is larger than %dx%d", ErrValidation, ref, MaxPlaceholderSize, MaxPlaceholderSize)
	}

	colors := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(colors) != 2 || !hexColor.MatchString(colors[0]) || !hexColor.MatchString(colors[1]) {
		return Placeholder{}, fmt.Errorf("%w: illustration %q has bad colors", ErrValidation, ref)
	}

	return Placeholder{
		Width:      width,
		Height:     height,
		Background: strings.ToUpper(colors[0]),
		Foreground: strings.ToUpper(colors[1]),
		Text:       u.Query().Get("text"),
	}, nil
}

// IsPlaceholder reports whether ref uses the placeholder scheme.
func IsPlaceholder(ref string) bool {
	return strings.HasPrefix(ref, PlaceholderScheme+"://")
}
