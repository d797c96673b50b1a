package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

// Image formats reported in descriptors.
const (
	formatPNG = "png"
	formatSVG = "svg"
)

// probe returns the format and intrinsic dimensions of data.
// SVG is sniffed by extension; raster formats by their magic bytes.
func probe(id string, data []byte) (format string, width, height int, err error) {
	if strings.EqualFold(path.Ext(id), ".svg") {
		width, height, err = probeSVG(data)
		if err != nil {
			return "", 0, 0, fmt.Errorf("%w: %q: %v", ErrDecode, id, err)
		}
		return formatSVG, width, height, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q: %v", ErrDecode, id, err)
	}
	return format, cfg.Width, cfg.Height, nil
}

// probeSVG reads width and height from the root <svg> element, falling back
// to the viewBox when either attribute is missing or not in pixels.
func probeSVG(data []byte) (int, int, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, 0, errors.New("no <svg> root element")
			}
			return 0, 0, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return 0, 0, fmt.Errorf("root element is <%s>, not <svg>", start.Name.Local)
		}

		var w, h int
		var viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				w = parseLength(attr.Value)
			case "height":
				h = parseLength(attr.Value)
			case "viewBox":
				viewBox = attr.Value
			}
		}
		if (w == 0 || h == 0) && viewBox != "" {
			vw, vh := parseViewBox(viewBox)
			if w == 0 {
				w = vw
			}
			if h == 0 {
				h = vh
			}
		}
		return w, h, nil
	}
}

// parseLength accepts unitless and px lengths; anything else yields 0.
func parseLength(s string) int {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

// parseViewBox extracts width and height from "min-x min-y width height".
func parseViewBox(s string) (int, int) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return 0, 0
	}
	return parseLength(fields[2]), parseLength(fields[3])
}

// recompressPNG re-encodes data at maximum compression and keeps the result
// only when it is smaller. Pixel data is unchanged.
func recompressPNG(data []byte) []byte {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return data
	}
	if buf.Len() >= len(data) {
		return data
	}
	return buf.Bytes()
}
