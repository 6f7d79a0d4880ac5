package integrations

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kerbaras/storytime/pkg/story"
	"github.com/kerbaras/storytime/pkg/utils"
)

const wrapWidth = 24

// fallback is drawn when a remote illustration cannot be used.
var fallback = story.Placeholder{
	Width:      800,
	Height:     600,
	Background: "D3D3D3",
	Foreground: "555555",
	Text:       "Illustration unavailable",
}

// Renderer turns illustration references into encoded images. Placeholder
// references are drawn locally, http(s) references are downloaded.
type Renderer struct {
	fetcher *utils.Fetcher
	log     *zap.Logger
}

func NewRenderer(timeout time.Duration, log *zap.Logger) *Renderer {
	return &Renderer{fetcher: utils.NewFetcher(timeout), log: log}
}

func (r *Renderer) Render(ctx context.Context, ref string) (ImageData, error) {
	if story.IsPlaceholder(ref) {
		ph, err := story.ParsePlaceholder(ref)
		if err != nil {
			return ImageData{}, err
		}
		return DrawPlaceholder(ph)
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		content, contentType, err := r.fetcher.Fetch(ctx, ref)
		if err == nil {
			_, _, err = image.DecodeConfig(bytes.NewReader(content))
		}
		if err != nil {
			if ctx.Err() != nil {
				return ImageData{}, ctx.Err()
			}
			r.log.Warn("illustration download failed, using fallback", zap.String("ref", ref), zap.Error(err))
			return DrawPlaceholder(fallback)
		}
		return ImageData{Content: content, ContentType: contentType}, nil
	}

	return ImageData{}, fmt.Errorf("%w: unsupported illustration reference %q", story.ErrValidation, ref)
}

// DrawPlaceholder paints the background color and centers the caption,
// scaled up from the 7x13 bitmap font.
func DrawPlaceholder(ph story.Placeholder) (ImageData, error) {
	if ph.Width <= 0 || ph.Height <= 0 || ph.Width > story.MaxPlaceholderSize || ph.Height > story.MaxPlaceholderSize {
		return ImageData{}, &story.ValidationError{Field: "illustration size", Value: fmt.Sprintf("%dx%d", ph.Width, ph.Height), Reason: "out of range"}
	}
	bg, err := parseHex(ph.Background)
	if err != nil {
		return ImageData{}, err
	}
	fg, err := parseHex(ph.Foreground)
	if err != nil {
		return ImageData{}, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, ph.Width, ph.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if caption := drawCaption(wrap(ph.Text, wrapWidth), fg); caption != nil {
		cb := caption.Bounds()
		scale := min(ph.Width*4/5/cb.Dx(), ph.Height*3/5/cb.Dy())
		if scale < 1 {
			scale = 1
		}
		w, h := cb.Dx()*scale, cb.Dy()*scale
		x, y := (ph.Width-w)/2, (ph.Height-h)/2
		draw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), caption, cb, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return ImageData{}, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return ImageData{Content: buf.Bytes(), ContentType: "image/png"}, nil
}

func drawCaption(lines []string, fg color.Color) *image.RGBA {
	if len(lines) == 0 {
		return nil
	}

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}

	img := image.NewRGBA(image.Rect(0, 0, width+2, lineHeight*len(lines)+2))
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	for i, l := range lines {
		lw := font.MeasureString(face, l).Ceil()
		d.Dot = fixed.P(1+(width-lw)/2, 1+face.Metrics().Ascent.Ceil()+i*lineHeight)
		d.DrawString(l)
	}
	return img
}

// wrap breaks text into lines of at most width runes, splitting on spaces.
func wrap(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func parseHex(s string) (color.RGBA, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: invalid color %q", story.ErrValidation, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
