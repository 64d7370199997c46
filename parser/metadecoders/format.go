package metadecoders

import (
	"path/filepath"
	"strings"
)

// Format is the identifier for a metadata format (front matter, site config).
type Format string

const (
	// TOML is used for +++ delimited front matter and .toml config files.
	TOML Format = "toml"
	// YAML is used for --- delimited front matter and .yaml/.yml config files.
	YAML Format = "yaml"
)

// FormatFromString turns formatStr, typically a file extension without any ".",
// into a Format. It returns an empty string for unknown formats.
func FormatFromString(formatStr string) Format {
	formatStr = strings.ToLower(formatStr)
	if strings.Contains(formatStr, ".") {
		// Assume a filename.
		formatStr = strings.TrimPrefix(filepath.Ext(formatStr), ".")
	}
	switch formatStr {
	case "yaml", "yml":
		return YAML
	case "toml":
		return TOML
	}
	return ""
}

// FormatFromFrontMatterType returns the Format for the given front matter
// delimiter character, i.e. the first byte of a "---" or "+++" fence.
func FormatFromFrontMatterType(delim byte) Format {
	switch delim {
	case '-':
		return YAML
	case '+':
		return TOML
	}
	return ""
}
