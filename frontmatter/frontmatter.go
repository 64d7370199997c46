// Package frontmatter splits a delimited metadata block from the body of a
// content file and decodes it into parameters.
//
// Two fences are recognized at the very start of a file: "---" for YAML and
// "+++" for TOML. Everything else is body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/parser/metadecoders"
)

// ErrUnterminated indicates that a front matter fence was opened but the
// closing fence is missing.
var ErrUnterminated = errors.New("front matter delimiter found but never closed")

// ParseError describes malformed front matter in a single source file.
// It is isolated to that file; the rest of the batch continues.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Content is the result of splitting and decoding one source file.
type Content struct {
	// Params holds the decoded front matter. Unknown keys are kept as-is
	// so downstream templates can still reach them.
	Params maps.Params

	// Body is the remaining document with the front matter block removed.
	Body []byte

	// Format of the front matter block, empty when the file had none.
	Format metadecoders.Format
}

// Parse splits an optional front matter block from data and decodes it.
// A file without front matter returns empty Params and the full input as Body.
func Parse(data []byte) (Content, error) {
	raw, body, format, err := split(data)
	if err != nil {
		return Content{}, err
	}

	if format == "" {
		return Content{Params: maps.Params{}, Body: body}, nil
	}

	m, err := metadecoders.Default.UnmarshalToMap(raw, format)
	if err != nil {
		return Content{}, err
	}

	params, _ := maps.ToParamsAndPrepare(m)

	return Content{Params: params, Body: body, Format: format}, nil
}

// split separates the raw front matter block from the body. The opening
// fence must be the first line of the file.
func split(data []byte) (raw, body []byte, format metadecoders.Format, err error) {
	nl := detectNewline(data)

	for _, delim := range []string{"---", "+++"} {
		open := []byte(delim + nl)
		if !bytes.HasPrefix(data, open) {
			continue
		}

		format = metadecoders.FormatFromFrontMatterType(delim[0])
		start := len(open)

		// An immediately closed block is valid and empty.
		if bytes.HasPrefix(data[start:], open) {
			return nil, data[start+len(open):], format, nil
		}

		closeSeq := []byte(nl + delim)
		idx := bytes.Index(data[start:], closeSeq)
		if idx < 0 {
			return nil, nil, "", ErrUnterminated
		}

		raw = data[start : start+idx+len(nl)]
		body = data[start+idx+len(closeSeq):]
		// Drop the newline that terminates the closing fence, if any.
		body = bytes.TrimPrefix(body, []byte(nl))
		return raw, body, format, nil
	}

	return nil, data, "", nil
}

func detectNewline(data []byte) string {
	for i := 0; i+1 < len(data); i++ {
		if data[i] == '\r' && data[i+1] == '\n' {
			return "\r\n"
		}
		if data[i] == '\n' {
			break
		}
	}
	return "\n"
}
