package markup_config

import (
	"github.com/mitchellh/mapstructure"

	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/markup/highlight"
)

// Config holds the markup handling configuration for a site.
type Config struct {
	// Default markdown handler for md/markdown extensions.
	DefaultMarkdownHandler string

	Highlight highlight.Config
}

// Default is used when the site config has no markup section.
var Default = Config{
	DefaultMarkdownHandler: "goldmark",
	Highlight:              highlight.DefaultConfig,
}

// Decode reads the markup section of the site config, if any,
// on top of the defaults.
func Decode(cfg config.Provider) (Config, error) {
	conf := Default

	m := cfg.GetStringMap("markup")
	if m == nil {
		return conf, nil
	}

	if err := mapstructure.WeakDecode(m, &conf); err != nil {
		return conf, err
	}

	return conf, nil
}
