package helpers

import (
	"html/template"
	"regexp"
	"strings"
	"sync"

	emoji "github.com/kyokomi/emoji/v2"

	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/markup"
)

// ContentSpec provides functionality to render markdown content.
type ContentSpec struct {
	Converters markup.ConverterProvider

	enableEmoji bool
}

// NewContentSpec returns a ContentSpec initialized
// with the appropriate fields from the given config.Provider.
func NewContentSpec(cfg config.Provider) (*ContentSpec, error) {
	spec := &ContentSpec{
		enableEmoji: cfg.GetBool("enableEmoji"),
	}

	converterProvider, err := markup.NewConverterProvider(cfg)
	if err != nil {
		return nil, err
	}
	spec.Converters = converterProvider

	return spec, nil
}

// ResolveMarkup returns the markup handler name for the given identifier,
// typically a file extension.
func (c *ContentSpec) ResolveMarkup(in string) string {
	in = strings.ToLower(in)
	switch in {
	case "md", "markdown", "mdown", "rmd":
		return "markdown"
	default:
		if conv := c.Converters.Get(in); conv != nil {
			return conv.Name()
		}
	}
	return ""
}

// PrepareContent runs the pre-render source transformations, currently
// only emoji replacement when enabled.
func (c *ContentSpec) PrepareContent(src []byte) []byte {
	if c.enableEmoji {
		return Emojify(src)
	}
	return src
}

// BytesToHTML converts bytes to type template.HTML.
func BytesToHTML(b []byte) template.HTML {
	return template.HTML(string(b))
}

var (
	emojiInit    sync.Once
	emojiMap     map[string][]byte
	emojiPattern = regexp.MustCompile(`:[a-zA-Z0-9_+\-]+:`)
)

// Emojify replaces emoji codes like :smile: with their unicode equivalent.
// Unknown codes are left untouched.
func Emojify(src []byte) []byte {
	emojiInit.Do(func() {
		emojiMap = make(map[string][]byte)
		for k, v := range emoji.CodeMap() {
			emojiMap[k] = []byte(v)
		}
	})

	return emojiPattern.ReplaceAllFunc(src, func(m []byte) []byte {
		if e, ok := emojiMap[string(m)]; ok {
			return e
		}
		return m
	})
}
