//go:build vips

package converter

import (
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"pixswap/contracts"
)

func init() {
	engines["vips"] = func() Engine {
		vipsOnce.Do(func() {
			vips.LoggingSettings(nil, vips.LogLevelError)
			vips.Startup(nil)
		})
		return VipsEngine{}
	}
}

var vipsOnce sync.Once

// VipsEngine transcodes through libvips. Noticeably faster than the pure Go
// engine on large TIFF and WEBP sources.
type VipsEngine struct{}

func (VipsEngine) Name() string { return "vips" }

func (VipsEngine) Transcode(data []byte, srcType, dstType string, opts EncodeOptions) (Decoded, error) {
	img, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return Decoded{}, contracts.NewConvertError(contracts.BadImage, "could not decode %s data: %v", srcType, err)
	}
	defer img.Close()

	width := img.Width()
	height := img.Height()

	if opts.FlattenWhite && img.HasAlpha() {
		if err := img.Flatten(&vips.Color{R: 255, G: 255, B: 255}); err != nil {
			return Decoded{}, contracts.NewConvertError(contracts.EnvironmentUnavailable, "flatten failed: %v", err)
		}
	}

	var out []byte
	switch dstType {
	case "image/png":
		params := vips.NewPngExportParams()
		out, _, err = img.ExportPng(params)
	case "image/jpeg":
		params := vips.NewJpegExportParams()
		params.Quality = opts.Quality
		out, _, err = img.ExportJpeg(params)
	default:
		return Decoded{}, contracts.NewConvertError(contracts.EnvironmentUnavailable, "no encoder for %s", dstType)
	}
	if err != nil {
		return Decoded{}, contracts.NewConvertError(contracts.EnvironmentUnavailable, "encoding to %s failed: %v", dstType, err)
	}
	return Decoded{Data: out, Width: width, Height: height}, nil
}
