package trace

import (
	"bytes"
	"context"
	"fmt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
)

// Loader reads trace documents from any afs supported location (file, mem, s3, gs ...)
type Loader struct {
	fs afs.Service
}

// NewLoader creates a loader
func NewLoader(fs afs.Service) *Loader {
	if fs == nil {
		fs = afs.New()
	}
	return &Loader{fs: fs}
}

// Load downloads, decompresses and decodes a trace document. YAML and JSON
// documents are supported, .zst and .gz suffixes are decompressed first.
func (l *Loader) Load(ctx context.Context, URL string) (*Document, error) {
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download trace %v: %w", URL, err)
	}
	if data, err = decompress(URL, data); err != nil {
		return nil, fmt.Errorf("failed to decompress trace %v: %w", URL, err)
	}
	return Decode(data)
}

// LoadTrace loads document and builds the trace
func (l *Loader) LoadTrace(ctx context.Context, URL string) (*Trace, *Document, error) {
	doc, err := l.Load(ctx, URL)
	if err != nil {
		return nil, nil, err
	}
	ret, err := doc.Trace()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace %v: %w", URL, err)
	}
	return ret, doc, nil
}

// Decode decodes YAML or JSON trace document
func Decode(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode trace document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decompress(URL string, data []byte) ([]byte, error) {
	switch {
	case strings.HasSuffix(URL, ".zst"):
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer decoder.Close()
		return decoder.DecodeAll(data, nil)
	case strings.HasSuffix(URL, ".gz"):
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return io.ReadAll(reader)
	}
	return data, nil
}
