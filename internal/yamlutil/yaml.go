// Package yamlutil wraps YAML parsing to isolate the external dependency.
// It serves both the site configuration file and document front matter.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrUnterminatedFM = errors.New("yamlutil: front matter is not terminated")
)

var (
	frontMatterDivider = []byte("---")
	byteOrderMark      = []byte("\ufeff")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// document body. A document without front matter returns nil and the input
// unchanged. The opening divider must be the first line.
func SplitFrontMatter(doc []byte) (frontMatter, body []byte, err error) {
	doc = bytes.TrimPrefix(doc, byteOrderMark)

	first, rest, _ := cutLine(doc)
	if !bytes.Equal(bytes.TrimRight(first, " \t\r"), frontMatterDivider) {
		return nil, doc, nil
	}

	var fm []byte
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), frontMatterDivider) {
			return fm, rest, nil
		}
		fm = append(fm, line...)
		fm = append(fm, '\n')
	}
	return nil, nil, ErrUnterminatedFM
}

// cutLine splits b at the first newline. ok is false when b has no newline.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	line, rest, ok = bytes.Cut(b, []byte("\n"))
	return line, rest, ok
}
