// Package persist saves and loads generated step traces as files, with
// the codec chosen by file extension.
package persist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// File extensions for supported codecs.
const (
	jsonExtension = ".json"
	lz4Extension  = ".json.lz4"
)

// Default indentation for pretty-printed JSON.
const defaultIndent = "  "

// Codec defines how a trace file payload is serialized and deserialized.
type Codec interface {
	// Encode writes the payload to the writer.
	Encode(w io.Writer, payload any) error
	// Decode reads the payload from the reader.
	Decode(r io.Reader, payload any) error
	// Extension returns the file extension for this codec.
	Extension() string
}

// JSONCodec implements Codec using JSON encoding with optional indentation.
type JSONCodec struct {
	// Indent specifies the indentation string. Empty string means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with pretty-printing (2-space indent).
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.Encode using JSON encoding.
func (c *JSONCodec) Encode(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	err := encoder.Encode(payload)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode using JSON decoding.
func (c *JSONCodec) Decode(r io.Reader, payload any) error {
	err := json.NewDecoder(r).Decode(payload)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension for plain JSON files.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// LZ4Codec implements Codec as LZ4-framed compact JSON. Step snapshots
// repeat most of their elements between steps, which LZ4 squeezes well.
type LZ4Codec struct{}

// NewLZ4Codec creates an LZ4-compressed JSON codec.
func NewLZ4Codec() *LZ4Codec {
	return &LZ4Codec{}
}

// Encode implements Codec.Encode: compact JSON through an LZ4 frame writer.
func (c *LZ4Codec) Encode(w io.Writer, payload any) error {
	zw := lz4.NewWriter(w)

	encodeErr := json.NewEncoder(zw).Encode(payload)
	if encodeErr != nil {
		return fmt.Errorf("lz4 encode: %w", encodeErr)
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return fmt.Errorf("lz4 flush: %w", closeErr)
	}

	return nil
}

// Decode implements Codec.Decode through an LZ4 frame reader.
func (c *LZ4Codec) Decode(r io.Reader, payload any) error {
	err := json.NewDecoder(lz4.NewReader(r)).Decode(payload)
	if err != nil {
		return fmt.Errorf("lz4 decode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension for compressed trace files.
func (c *LZ4Codec) Extension() string {
	return lz4Extension
}
