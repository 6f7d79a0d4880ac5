package integrations

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	tests := []struct {
		id     string
		wantOK bool
	}{
		{"", true},
		{"color", true},
		{"ereader", true},
		{"kindle-scribe", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, ok := GetProfile(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.NotEmpty(t, p.Name)
			}
		})
	}
}

func TestProfileIDs(t *testing.T) {
	assert.Equal(t, []string{"color", "ereader", "ereader-hd", "tablet"}, ProfileIDs())
}

func TestProfileSettings(t *testing.T) {
	color := Profiles["color"].Settings()
	assert.False(t, color.Grayscale)
	assert.Equal(t, "png", color.Format)

	eink := Profiles["ereader-hd"].Settings()
	assert.True(t, eink.Grayscale)
	assert.Equal(t, "jpeg", eink.Format)
	assert.Equal(t, 90, eink.Quality)
	assert.Equal(t, 1072, eink.MaxWidth)
}

func TestImageProcessorFit(t *testing.T) {
	p := NewImageProcessor(ImageSettings{MaxWidth: 800, MaxHeight: 1200})

	tests := []struct {
		name                  string
		width, height         int
		wantWidth, wantHeight int
	}{
		{"no resize needed", 600, 800, 600, 800},
		{"resize width", 1000, 800, 800, 640},
		{"resize height", 800, 1500, 640, 1200},
		{"resize both", 1600, 2400, 800, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := p.fit(tt.width, tt.height)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}

func TestImageProcessorProcess(t *testing.T) {
	src := ImageData{Content: solidPNG(t, 200, 100, color.RGBA{0, 128, 255, 255}), ContentType: "image/png", Index: 3}

	t.Run("color", func(t *testing.T) {
		out, err := NewImageProcessor(Profiles["color"].Settings()).Process(src)
		require.NoError(t, err)
		assert.Equal(t, "image/png", out.ContentType)
		assert.Equal(t, 3, out.Index)
		assert.Equal(t, image.Rect(0, 0, 200, 100), decode(t, out).Bounds())
	})

	t.Run("grayscale resized", func(t *testing.T) {
		settings := Profiles["ereader"].Settings()
		settings.MaxWidth, settings.MaxHeight = 100, 100

		out, err := NewImageProcessor(settings).Process(src)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", out.ContentType)

		img := decode(t, out)
		assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())
		_, isGray := img.ColorModel().Convert(color.RGBA{255, 0, 0, 255}).(color.Gray)
		assert.True(t, isGray)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := NewImageProcessor(Profiles["color"].Settings()).Process(ImageData{Content: []byte("nope")})
		assert.Error(t, err)
	})
}
