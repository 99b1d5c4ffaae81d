package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfview/pkg/errors"
)

// Format is a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene extension %q (want .toml or .json)", filepath.Ext(path))
}

// ParseFormat parses "toml" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTOML:
		return FormatTOML, nil
	case FormatJSON, "":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", s)
}

// Read decodes and validates a scene from r. Fields the input omits keep
// their defaults.
func Read(r io.Reader, format Format) (*Scene, error) {
	s := New()
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes a scene from memory.
func Parse(data []byte, format Format) (*Scene, error) {
	return Read(bytes.NewReader(data), format)
}

// Load reads the scene file at path.
func Load(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Write encodes the scene to w.
func (s *Scene) Write(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
}

// Canonical returns a compact JSON encoding used to fingerprint the scene.
func (s *Scene) Canonical() []byte {
	data, _ := json.Marshal(s)
	return data
}
