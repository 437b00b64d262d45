package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"pixswap/contracts"
)

// Engine is the bitmap decode/re-encode seam. The default engine is pure Go;
// a libvips-backed one can be compiled in and selected by name.
type Engine interface {
	Name() string
	Transcode(data []byte, srcType, dstType string, opts EncodeOptions) (Decoded, error)
}

// EncodeOptions control the re-encode step.
type EncodeOptions struct {
	// Quality is the lossy quality factor on a 1-100 scale.
	Quality int
	// FlattenWhite paints an opaque white background before drawing, so
	// transparent regions do not turn black in formats without alpha.
	FlattenWhite bool
}

// Decoded is the engine's output: encoded bytes plus pixel dimensions.
type Decoded struct {
	Data   []byte
	Width  int
	Height int
}

var engines = map[string]func() Engine{
	"pure": func() Engine { return PureEngine{} },
}

// ByName returns the engine registered under name. Engines behind build tags
// register themselves; asking for one that was not compiled in is an error.
func ByName(name string) (Engine, error) {
	mk, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	return mk(), nil
}

// PureEngine decodes and encodes with the Go image packages only.
type PureEngine struct{}

func (PureEngine) Name() string { return "pure" }

func (PureEngine) Transcode(data []byte, srcType, dstType string, opts EncodeOptions) (Decoded, error) {
	img, err := decodeAs(data, srcType)
	if err != nil {
		return Decoded{}, contracts.NewConvertError(contracts.BadImage, "could not decode %s data: %v", srcType, err)
	}

	bounds := img.Bounds()
	if opts.FlattenWhite {
		flat := image.NewRGBA(bounds)
		draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
		draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
		img = flat
	}

	var buf bytes.Buffer
	switch dstType {
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality})
	default:
		return Decoded{}, contracts.NewConvertError(contracts.EnvironmentUnavailable, "no encoder for %s", dstType)
	}
	if err != nil {
		return Decoded{}, contracts.NewConvertError(contracts.EnvironmentUnavailable, "encoding to %s failed: %v", dstType, err)
	}
	return Decoded{Data: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func decodeAs(data []byte, mimeType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch mimeType {
	case "image/png":
		return png.Decode(r)
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	case "image/tiff":
		return tiff.Decode(r)
	case "image/bmp":
		return bmp.Decode(r)
	}
	return nil, fmt.Errorf("no decoder for %s", mimeType)
}
