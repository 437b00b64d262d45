package converter

import (
	"pixswap/contracts"
)

// DefaultQuality is the lossy quality factor used when none is configured,
// a 0.9 quality factor on the JPEG 1-100 scale.
const DefaultQuality = 90

// Converter runs one upload through the active preset's conversion.
type Converter struct {
	engine  Engine
	quality int
}

func New(engine Engine, quality int) *Converter {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Converter{engine: engine, quality: quality}
}

// Convert validates the upload against the preset and re-encodes it.
// Rejections come back as *contracts.ConvertError so callers can surface
// them as notices.
func (c *Converter) Convert(up contracts.Upload, preset contracts.Preset) (contracts.Result, error) {
	if up.DeclaredType != preset.InputType {
		return contracts.Result{}, contracts.NewConvertError(contracts.TypeMismatch,
			"%s expects a %s file, got %s", preset.Label, preset.InputType, up.DeclaredType)
	}
	if preset.External {
		return contracts.Result{}, contracts.NewConvertError(contracts.UnsupportedConversion,
			"%s requires external processing", preset.Label)
	}
	if c.engine == nil {
		return contracts.Result{}, contracts.NewConvertError(contracts.EnvironmentUnavailable,
			"no conversion engine available")
	}

	out, err := c.engine.Transcode(up.Data, preset.InputType, preset.OutputType, EncodeOptions{
		Quality:      c.quality,
		FlattenWhite: opaqueLossy(preset.OutputType),
	})
	if err != nil {
		return contracts.Result{}, err
	}

	return contracts.Result{
		Data:      out.Data,
		MIMEType:  preset.OutputType,
		Extension: preset.Extension,
		Width:     out.Width,
		Height:    out.Height,
	}, nil
}

// opaqueLossy reports whether the target format has no alpha channel, in
// which case transparent source regions must be flattened onto white.
func opaqueLossy(mimeType string) bool {
	return mimeType == "image/jpeg"
}
