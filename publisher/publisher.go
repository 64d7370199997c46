// Package publisher writes rendered output to the publish filesystem.
package publisher

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	bp "github.com/getlectern/lectern/bufferpool"
	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/helpers"
	"github.com/getlectern/lectern/media"
	"github.com/getlectern/lectern/minifiers"
	"github.com/getlectern/lectern/output"
	"github.com/getlectern/lectern/transform"
	"github.com/getlectern/lectern/transform/urlreplacers"
)

// Publisher publishes a result file.
type Publisher interface {
	Publish(d Descriptor) error
}

// Descriptor describes the needed publishing chain for an item.
type Descriptor struct {
	// The content to publish.
	Src io.Reader

	// The OutputFormat of this content.
	OutputFormat output.Format

	// Where to publish this content. This is a filesystem-relative path.
	TargetPath string

	// If set, will replace all root-relative URLs with this one.
	AbsURLPath string

	// Enable to minify the output using the OutputFormat defined above to
	// pick the correct minifier configuration.
	Minify bool
}

// DestinationPublisher prepares and publishes an item to the defined
// destination, e.g. /public.
type DestinationPublisher struct {
	fs  afero.Fs
	min minifiers.Client
}

// NewDestinationPublisher creates a new DestinationPublisher.
func NewDestinationPublisher(fs afero.Fs, outputFormats output.Formats, mediaTypes media.Types, cfg config.Provider) (pub DestinationPublisher, err error) {
	pub = DestinationPublisher{fs: fs}
	pub.min, err = minifiers.New(mediaTypes, outputFormats, cfg)
	return
}

// Publish applies any relevant transformations and writes the file
// to its destination.
func (p DestinationPublisher) Publish(d Descriptor) error {
	if d.TargetPath == "" {
		return errors.New("publish: must provide a TargetPath")
	}

	src := d.Src

	transformers := p.createTransformerChain(d)

	if len(transformers) != 0 {
		b := bp.GetBuffer()
		defer bp.PutBuffer(b)

		if err := transformers.Apply(b, d.Src); err != nil {
			return fmt.Errorf("failed to process %q: %w", d.TargetPath, err)
		}

		// This is now what we write to disk.
		src = b
	}

	f, err := helpers.OpenFileForWriting(p.fs, d.TargetPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, src)
	return err
}

func (p DestinationPublisher) createTransformerChain(f Descriptor) transform.Chain {
	transformers := transform.NewEmpty()

	if f.AbsURLPath != "" && f.OutputFormat.IsHTML {
		transformers = append(transformers, urlreplacers.NewAbsURLTransformer(f.AbsURLPath))
	}

	if f.Minify {
		if t := p.min.Transformer(f.OutputFormat.MediaType); t != nil {
			transformers = append(transformers, t)
		}
	}

	return transformers
}
