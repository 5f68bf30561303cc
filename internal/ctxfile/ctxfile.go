// Package ctxfile loads reference host contexts from YAML or TOML files.
// The decoded attribute map is the opaque initialization value handed to
// rockflow.NewMapContext.
package ctxfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mgomes/rockflow/rockflow"
)

// Format selects the file decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is the on-disk shape of a context.
type File struct {
	Attrs    map[string]any `yaml:"attrs" toml:"attrs"`
	ReadOnly []string       `yaml:"read_only" toml:"read_only"`
	Items    []Item         `yaml:"items" toml:"items"`
}

// Item describes one child record of a context.
type Item struct {
	Attrs    map[string]any `yaml:"attrs" toml:"attrs"`
	ReadOnly []string       `yaml:"read_only" toml:"read_only"`
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("ctxfile: unsupported context file extension %q", filepath.Ext(path))
	}
}

// Decode reads a context file in the given format. Unknown top-level keys
// are rejected.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("ctxfile: decode yaml: %w", err)
		}
	case FormatTOML:
		meta, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("ctxfile: decode toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("ctxfile: unknown toml key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("ctxfile: unknown format %q", format)
	}
	return &f, nil
}

// Build constructs the context described by f. Files without items yield a
// base-only *rockflow.MapContext; files with items yield a
// *rockflow.ItemContext.
func (f *File) Build() (rockflow.Context, error) {
	opts := []rockflow.MapOption{rockflow.WithReadOnly(f.ReadOnly...)}
	if len(f.Items) == 0 {
		mc, err := rockflow.NewMapContext(attrsOrNil(f.Attrs), opts...)
		if err != nil {
			return nil, fmt.Errorf("ctxfile: %w", err)
		}
		return mc, nil
	}
	items := make([]*rockflow.MapContext, len(f.Items))
	for i, item := range f.Items {
		mc, err := rockflow.NewMapContext(attrsOrNil(item.Attrs), rockflow.WithReadOnly(item.ReadOnly...))
		if err != nil {
			return nil, fmt.Errorf("ctxfile: item %d: %w", i, err)
		}
		items[i] = mc
	}
	ic, err := rockflow.NewItemContext(attrsOrNil(f.Attrs), items, opts...)
	if err != nil {
		return nil, fmt.Errorf("ctxfile: %w", err)
	}
	return ic, nil
}

// Load reads and builds the context stored at path.
func Load(path string) (rockflow.Context, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ctxfile: read %s: %w", path, err)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.Build()
}

// attrsOrNil keeps a nil map as an untyped nil so NewMapContext treats a
// missing attrs section as empty.
func attrsOrNil(attrs map[string]any) any {
	if attrs == nil {
		return nil
	}
	return attrs
}
