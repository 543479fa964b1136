package sites

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/siteoverview/pkg/errors"
)

// Supported inventory formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Read decodes an overview in the given format and validates it.
func Read(r io.Reader, format string) (Overview, error) {
	var ov Overview
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&ov); err != nil {
			return Overview{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&ov); err != nil {
			return Overview{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
	default:
		return Overview{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported inventory format: %q (must be one of: json, toml)", format)
	}

	if err := ov.Validate(); err != nil {
		return Overview{}, err
	}
	return ov, nil
}

// ReadFile reads an overview from path. The format is taken from the file
// extension (.json, .toml).
func ReadFile(path string) (Overview, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Overview{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overview{}, errors.Wrap(errors.ErrCodeNotFound, err, "inventory %s", path)
		}
		return Overview{}, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "open inventory %s", path)
	}
	defer f.Close()

	return Read(f, format)
}

// FormatFromPath maps a file extension to an inventory format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer inventory format from %q (use .json or .toml)", path)
	}
}

// Write encodes ov as indented JSON.
func Write(w io.Writer, ov Overview) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ov)
}
