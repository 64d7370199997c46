package highlight

// Config configures the chroma highlighter.
type Config struct {
	// Style is the chroma style name, see https://xyproto.github.io/splash/docs/
	Style string

	// NoClasses uses inline style attributes instead of CSS classes.
	NoClasses bool

	// TabWidth in spaces when rendering tabs.
	TabWidth int

	// GuessSyntax tries to detect the language of fences without a label.
	GuessSyntax bool
}

// DefaultConfig is used when the site config has no markup.highlight section.
var DefaultConfig = Config{
	Style:     "monokai",
	NoClasses: true,
	TabWidth:  4,
}
