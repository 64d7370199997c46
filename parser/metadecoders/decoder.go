// Package metadecoders decodes metadata in TOML or YAML format into maps.
package metadecoders

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// Decoder provides some configuration options for the decoders.
type Decoder struct{}

// Default is a Decoder in its default configuration.
var Default = Decoder{}

// UnmarshalToMap will unmarshal data in format f into a new map.
func (d Decoder) UnmarshalToMap(data []byte, f Format) (map[string]any, error) {
	m := make(map[string]any)
	if len(data) == 0 {
		return m, nil
	}

	var err error
	switch f {
	case TOML:
		err = toml.Unmarshal(data, &m)
	case YAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unmarshal of format %q is not supported", f)
	}

	if err != nil {
		return nil, fmt.Errorf("unmarshal failed for format %q: %w", f, err)
	}

	return m, nil
}

// UnmarshalFileToMap unmarshals the file in filename to a new map.
// The format is resolved from the file extension.
func (d Decoder) UnmarshalFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	format := FormatFromString(filename)
	if format == "" {
		return nil, fmt.Errorf("%q is not a valid metadata format", filename)
	}

	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}

	return d.UnmarshalToMap(data, format)
}
