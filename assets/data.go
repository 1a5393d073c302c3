package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a Data asset.
type Format uint8

const (
	FormatJSON Format = iota // encoding/json
	FormatTOML               // BurntSushi/toml
	FormatYAML               // yaml.v3
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// DataExtensions lists the discriminators DataLoader can decode.
var DataExtensions = []string{"json", "toml", "yaml", "yml"}

// FormatFor maps a discriminator to its Format.
func FormatFor(ext string) (Format, bool) {
	switch ext {
	case "json":
		return FormatJSON, true
	case "toml":
		return FormatTOML, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return 0, false
}

// Data is a structured document (game tables, level layouts, tuning). The
// raw bytes are kept so callers can decode into their own types.
type Data struct {
	Base
	raw    []byte
	format Format
}

// Format returns the document encoding.
func (d *Data) Format() Format { return d.format }

// Raw returns the undecoded bytes. The slice MUST NOT be mutated.
func (d *Data) Raw() []byte { return d.raw }

// Decode unmarshals the document into v.
func (d *Data) Decode(v any) error {
	return decodeData(d.format, d.raw, v)
}

// Free drops the raw bytes.
func (d *Data) Free() {
	d.raw = nil
}

func decodeData(f Format, raw []byte, v any) error {
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(raw, v)
	case FormatTOML:
		err = toml.Unmarshal(raw, v)
	case FormatYAML:
		err = yaml.Unmarshal(raw, v)
	default:
		err = fmt.Errorf("unknown format %v", f)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", f, err)
	}
	return nil
}

// DataLoader reads JSON, TOML and YAML documents into *Data. The document
// is validated by decoding it once into a generic map, so its root must be
// an object.
type DataLoader struct{}

func (DataLoader) Load(a Asset, r io.Reader) error {
	d, ok := a.(*Data)
	if !ok {
		return fmt.Errorf("%w: data loader cannot populate %T", ErrUnsupportedAsset, a)
	}
	ext := a.Descriptor().Extension()
	f, ok := FormatFor(ext)
	if !ok {
		return fmt.Errorf("no data format for extension %q", ext)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	var probe map[string]any
	if err := decodeData(f, buf.Bytes(), &probe); err != nil {
		return err
	}
	d.raw = buf.Bytes()
	d.format = f
	return nil
}
