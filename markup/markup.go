// Package markup maps markup identifiers to converters.
package markup

import (
	"strings"

	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/markup/converter"
	"github.com/getlectern/lectern/markup/goldmark"
	"github.com/getlectern/lectern/markup/highlight"
	"github.com/getlectern/lectern/markup/markup_config"
)

// ConverterProvider looks up converter providers by markup name.
type ConverterProvider interface {
	Get(name string) converter.Provider
	GetMarkupConfig() markup_config.Config
	GetHighlighter() highlight.Highlighter
}

// NewConverterProvider builds the converter registry from the site config.
func NewConverterProvider(cfg config.Provider) (ConverterProvider, error) {
	converters := make(map[string]converter.Provider)

	markupConfig, err := markup_config.Decode(cfg)
	if err != nil {
		return nil, err
	}

	cpc := converter.ProviderConfig{
		MarkupConfig: markupConfig,
		Highlighter:  highlight.New(markupConfig.Highlight),
	}

	defaultHandler := markupConfig.DefaultMarkdownHandler
	add := func(p converter.ProviderProvider, aliases ...string) error {
		c, err := p.New(cpc)
		if err != nil {
			return err
		}

		name := c.Name()
		aliases = append(aliases, name)

		if strings.EqualFold(name, defaultHandler) {
			aliases = append(aliases, "markdown")
		}

		addConverter(converters, c, aliases...)
		return nil
	}

	if err := add(goldmark.Provider, "md", "mdown", "rmd"); err != nil {
		return nil, err
	}

	return &converterRegistry{
		config:     cpc,
		converters: converters,
	}, nil
}

func addConverter(m map[string]converter.Provider, c converter.Provider, aliases ...string) {
	for _, alias := range aliases {
		m[strings.ToLower(alias)] = c
	}
}

type converterRegistry struct {
	// Maps name (md, markdown, goldmark etc.) to a converter provider.
	// Note that this is also used for aliasing, so the same converter
	// may be registered multiple times. All names are lower case.
	converters map[string]converter.Provider

	config converter.ProviderConfig
}

func (r *converterRegistry) Get(name string) converter.Provider {
	return r.converters[strings.ToLower(name)]
}

func (r *converterRegistry) GetHighlighter() highlight.Highlighter {
	return r.config.Highlighter
}

func (r *converterRegistry) GetMarkupConfig() markup_config.Config {
	return r.config.MarkupConfig
}
