// Package media holds the MIME types used when publishing.
package media

// Type (also known as MIME type) is a two-part identifier for file formats.
type Type struct {
	MainType string `json:"mainType"` // i.e. text
	SubType  string `json:"subType"`  // i.e. html

	// Suffix is the file ending, i.e. "html".
	Suffix string `json:"suffix"`
}

// Type returns the full MIME type string, i.e. "text/html".
func (t Type) Type() string {
	return t.MainType + "/" + t.SubType
}

// Definitions of the media types in play during publishing.
var (
	HTMLType = Type{MainType: "text", SubType: "html", Suffix: "html"}
	CSSType  = Type{MainType: "text", SubType: "css", Suffix: "css"}
	JSType   = Type{MainType: "application", SubType: "javascript", Suffix: "js"}
	JSONType = Type{MainType: "application", SubType: "json", Suffix: "json"}
	XMLType  = Type{MainType: "application", SubType: "xml", Suffix: "xml"}
	SVGType  = Type{MainType: "image", SubType: "svg+xml", Suffix: "svg"}
	TextType = Type{MainType: "text", SubType: "plain", Suffix: "txt"}
)

// Types is a slice of Type.
type Types []Type

// DefaultTypes is the default media types supported by the publisher.
var DefaultTypes = Types{
	HTMLType,
	CSSType,
	JSType,
	JSONType,
	XMLType,
	SVGType,
	TextType,
}

// BySuffix returns the media types matching the given file suffix.
func (ts Types) BySuffix(suffix string) []Type {
	var res []Type
	for _, t := range ts {
		if t.Suffix == suffix {
			res = append(res, t)
		}
	}
	return res
}
