package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// ImageProcessor fits illustrations to a reader profile.
type ImageProcessor struct {
	settings ImageSettings
}

func NewImageProcessor(settings ImageSettings) *ImageProcessor {
	return &ImageProcessor{settings: settings}
}

// Process decodes img, applies the settings and re-encodes it.
func (p *ImageProcessor) Process(img ImageData) (ImageData, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Content))
	if err != nil {
		return ImageData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := p.fit(bounds.Dx(), bounds.Dy())

	var out image.Image = src
	if w != bounds.Dx() || h != bounds.Dy() {
		out = resize(src, w, h)
	}
	if p.settings.Contrast != 1.0 || p.settings.Gamma != 1.0 {
		out = p.adjust(out)
	}
	if p.settings.Grayscale {
		out = toGrayscale(out)
	}

	content, contentType, err := p.encode(out)
	if err != nil {
		return ImageData{}, err
	}
	return ImageData{Content: content, ContentType: contentType, Index: img.Index}, nil
}

// fit scales width and height down, keeping the aspect ratio, until they
// fit the profile. Images are never scaled up.
func (p *ImageProcessor) fit(width, height int) (int, int) {
	maxW, maxH := p.settings.MaxWidth, p.settings.MaxHeight
	if maxW <= 0 || maxH <= 0 || (width <= maxW && height <= maxH) {
		return width, height
	}

	scale := math.Min(float64(maxW)/float64(width), float64(maxH)/float64(height))
	return max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))
}

func resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func toGrayscale(img image.Image) image.Image {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// adjust applies contrast around mid gray followed by gamma correction.
func (p *ImageProcessor) adjust(img image.Image) image.Image {
	var table [256]uint8
	for i := range table {
		v := (float64(i)-128)*p.settings.Contrast + 128
		v = math.Max(0, math.Min(255, v))
		v = 255 * math.Pow(v/255, 1/p.settings.Gamma)
		table[i] = uint8(math.Max(0, math.Min(255, v)))
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			dst.SetRGBA(x, y, color.RGBA{table[r>>8], table[g>>8], table[b>>8], uint8(a >> 8)})
		}
	}
	return dst
}

func (p *ImageProcessor) encode(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer

	switch p.settings.Format {
	case "jpeg", "jpg":
		quality := p.settings.Quality
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	case "png", "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
	return nil, "", fmt.Errorf("unsupported format: %s", p.settings.Format)
}
