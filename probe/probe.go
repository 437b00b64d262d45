// Package probe reads best-effort metadata from source images: resolution
// from EXIF or the PNG pHYs chunk, and the compression scheme of TIFF
// sources. Probing never fails a conversion; callers fall back to defaults.
package probe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/google/tiff"
)

const (
	// DefaultDPI is assumed when the source carries no resolution info.
	DefaultDPI = 96.0
)

// Info is what could be read from the source. Zero fields mean "not present".
type Info struct {
	DPIX        float64 `json:"dpiX,omitempty"`
	DPIY        float64 `json:"dpiY,omitempty"`
	Compression string  `json:"compression,omitempty"`
}

// Inspect probes data according to its declared type.
func Inspect(data []byte, mimeType string) Info {
	var info Info
	switch mimeType {
	case "image/png":
		if dpi, err := PNGDPI(data); err == nil {
			info.DPIX, info.DPIY = dpi, dpi
		}
	case "image/tiff", "image/jpeg":
		if x, y, err := ExifDPI(data); err == nil {
			info.DPIX, info.DPIY = x, y
		}
	}
	if mimeType == "image/tiff" {
		if c, err := TIFFCompression(data); err == nil {
			info.Compression = c
		}
	}
	return info
}

// ExifDPI extracts X/Y resolution from embedded EXIF data.
func ExifDPI(data []byte) (float64, float64, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, 0, fmt.Errorf("EXIF not found: %v", err)
	}

	im := exifcommon.NewIfdMapping()
	ti := exif.NewTagIndex()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return 0, 0, err
	}

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return 0, 0, err
	}

	dpiX, dpiY := DefaultDPI, DefaultDPI

	if tag, err := index.RootIfd.FindTagWithName("XResolution"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				dpiX = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		}
	}
	if tag, err := index.RootIfd.FindTagWithName("YResolution"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				dpiY = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		}
	}
	if tag, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			// unit 3 is centimeters
			if u, ok := val.(uint16); ok && u == 3 {
				dpiX *= 2.54
				dpiY *= 2.54
			}
		}
	}

	return dpiX, dpiY, nil
}

// PNGDPI reads the pHYs chunk. Returns DefaultDPI when the chunk is absent
// or its unit is unknown.
func PNGDPI(data []byte) (float64, error) {
	const physChunk = "pHYs"
	const pngHeaderLen = 8

	if len(data) < pngHeaderLen {
		return 0, fmt.Errorf("short PNG data")
	}
	buf := bytes.NewReader(data[pngHeaderLen:])

	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			break
		}

		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			break
		}

		if string(chunkType) == physChunk {
			var pxPerUnitX, pxPerUnitY uint32
			var unit byte

			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitX); err != nil {
				return 0, err
			}
			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitY); err != nil {
				return 0, err
			}
			if err := binary.Read(buf, binary.BigEndian, &unit); err != nil {
				return 0, err
			}

			// unit 1 is pixels per meter
			if unit == 1 {
				return float64(pxPerUnitX) * 0.0254, nil
			}
			break
		}

		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			break
		}
	}

	return DefaultDPI, nil
}

// TIFF compression tag values, per the TIFF 6.0 spec.
var compressionNames = map[uint16]string{
	1:     "none",
	2:     "ccitt-rle",
	3:     "ccitt-g3",
	4:     "ccitt-g4",
	5:     "lzw",
	7:     "jpeg",
	8:     "deflate",
	32773: "packbits",
}

const compressionTag = 259

// TIFFCompression reads the compression tag of the first IFD.
func TIFFCompression(data []byte) (string, error) {
	t, err := tiff.Parse(bytes.NewReader(data), nil, nil)
	if err != nil {
		return "", fmt.Errorf("parsing TIFF: %v", err)
	}
	ifds := t.IFDs()
	if len(ifds) == 0 {
		return "", fmt.Errorf("TIFF has no IFD")
	}
	ifd := ifds[0]
	if !ifd.HasField(compressionTag) {
		return "none", nil
	}
	f := ifd.GetField(compressionTag)
	val := f.Value()
	b := val.Bytes()
	if len(b) < 2 {
		return "", fmt.Errorf("malformed compression field")
	}
	c := val.Order().Uint16(b[:2])
	if name, ok := compressionNames[c]; ok {
		return name, nil
	}
	return fmt.Sprintf("unknown(%d)", c), nil
}
