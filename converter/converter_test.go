package converter

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"pixswap/contracts"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func mustPreset(t *testing.T, label string) contracts.Preset {
	t.Helper()
	for _, p := range contracts.Presets {
		if p.Label == label {
			return p
		}
	}
	t.Fatalf("no preset labeled %q", label)
	return contracts.Preset{}
}

func convertKind(t *testing.T, err error) contracts.ErrorKind {
	t.Helper()
	ce, ok := err.(*contracts.ConvertError)
	require.True(t, ok, "expected *contracts.ConvertError, got %T: %v", err, err)
	return ce.Kind
}

func TestConvertTypeMismatch(t *testing.T) {
	conv := New(PureEngine{}, DefaultQuality)
	up := contracts.Upload{
		Name:         "sample.bin",
		DeclaredType: "application/octet-stream",
		Data:         []byte("not an image"),
	}
	for _, preset := range contracts.Presets {
		t.Run(preset.Label, func(t *testing.T) {
			result, err := conv.Convert(up, preset)
			require.Error(t, err)
			assert.Equal(t, contracts.TypeMismatch, convertKind(t, err))
			assert.Empty(t, result.Data)
		})
	}
}

func TestConvertExternalPresetsAlwaysReject(t *testing.T) {
	conv := New(PureEngine{}, DefaultQuality)

	valid := encodePNG(t, solidImage(4, 4, color.NRGBA{R: 255, A: 255}))
	external := 0
	for _, preset := range contracts.Presets {
		if !preset.External {
			continue
		}
		external++
		t.Run(preset.Label, func(t *testing.T) {
			// Declared type matches; the bytes may even be a valid image.
			// External pairs reject no matter what.
			result, err := conv.Convert(contracts.Upload{
				Name:         "sample",
				DeclaredType: preset.InputType,
				Data:         valid,
			}, preset)
			require.Error(t, err)
			assert.Equal(t, contracts.UnsupportedConversion, convertKind(t, err))
			assert.Contains(t, err.Error(), "requires external processing")
			assert.Empty(t, result.Data)
		})
	}
	assert.Equal(t, 2, external, "expected exactly two document presets")
}

func TestConvertPNGToJPG(t *testing.T) {
	conv := New(PureEngine{}, DefaultQuality)
	preset := mustPreset(t, "PNG to JPG")

	result, err := conv.Convert(contracts.Upload{
		Name:         "red.png",
		DeclaredType: "image/png",
		Data:         encodePNG(t, solidImage(8, 6, color.NRGBA{R: 200, G: 10, B: 10, A: 255})),
	}, preset)
	require.NoError(t, err)
	require.NotEmpty(t, result.Data)
	assert.Equal(t, "image/jpeg", result.MIMEType)
	assert.Equal(t, "converted.jpg", result.DownloadName())
	assert.Equal(t, 8, result.Width)
	assert.Equal(t, 6, result.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), decoded.Bounds())
}

func TestConvertTransparencyFlattensToWhite(t *testing.T) {
	conv := New(PureEngine{}, DefaultQuality)
	preset := mustPreset(t, "PNG to JPG")

	// Fully transparent except one red pixel in the middle.
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.Set(5, 5, color.NRGBA{R: 255, A: 255})

	result, err := conv.Convert(contracts.Upload{
		Name:         "transparent.png",
		DeclaredType: "image/png",
		Data:         encodePNG(t, src),
	}, preset)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)

	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Greater(t, r>>8, uint32(240), "transparent region should be white, not black")
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestConvertBadImage(t *testing.T) {
	conv := New(PureEngine{}, DefaultQuality)
	preset := mustPreset(t, "PNG to JPG")

	result, err := conv.Convert(contracts.Upload{
		Name:         "broken.png",
		DeclaredType: "image/png",
		Data:         []byte("definitely not a PNG"),
	}, preset)
	require.Error(t, err)
	assert.Equal(t, contracts.BadImage, convertKind(t, err))
	assert.Empty(t, result.Data)
}

func TestConvertNoEngine(t *testing.T) {
	conv := New(nil, DefaultQuality)
	preset := mustPreset(t, "PNG to JPG")

	_, err := conv.Convert(contracts.Upload{
		Name:         "red.png",
		DeclaredType: "image/png",
		Data:         encodePNG(t, solidImage(2, 2, color.White)),
	}, preset)
	require.Error(t, err)
	assert.Equal(t, contracts.EnvironmentUnavailable, convertKind(t, err))
}

func TestPureEngineDecodesOtherFormats(t *testing.T) {
	img := solidImage(5, 5, color.NRGBA{G: 128, A: 255})

	cases := []struct {
		mimeType string
		encode   func(*bytes.Buffer) error
	}{
		{"image/gif", func(buf *bytes.Buffer) error { return gif.Encode(buf, img, nil) }},
		{"image/bmp", func(buf *bytes.Buffer) error { return bmp.Encode(buf, img) }},
		{"image/tiff", func(buf *bytes.Buffer) error { return tiff.Encode(buf, img, nil) }},
	}

	for _, tc := range cases {
		t.Run(tc.mimeType, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tc.encode(&buf))

			out, err := PureEngine{}.Transcode(buf.Bytes(), tc.mimeType, "image/png", EncodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, 5, out.Width)
			assert.Equal(t, 5, out.Height)

			_, err = png.Decode(bytes.NewReader(out.Data))
			assert.NoError(t, err)
		})
	}
}

func TestEngineByName(t *testing.T) {
	engine, err := ByName("pure")
	require.NoError(t, err)
	assert.Equal(t, "pure", engine.Name())

	_, err = ByName("nonexistent")
	assert.Error(t, err)
}
