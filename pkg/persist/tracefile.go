package persist

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
)

// formatVersion is bumped when the trace file layout changes.
const formatVersion = 1

// Sentinel errors for trace files.
var (
	// ErrUnknownExtension indicates the path matches no supported codec.
	ErrUnknownExtension = errors.New("unknown trace file extension")
	// ErrVersionMismatch indicates the file was written by an
	// incompatible format version.
	ErrVersionMismatch = errors.New("unsupported trace file version")
)

// TraceFile is the on-disk envelope around a step trace.
type TraceFile struct {
	Version   int        `json:"version"`
	Operation string     `json:"operation,omitempty"`
	Steps     heap.Trace `json:"steps"`
}

// CodecForPath selects a codec by file extension (.json or .json.lz4).
func CodecForPath(path string) (Codec, error) {
	switch {
	case strings.HasSuffix(path, lz4Extension):
		return NewLZ4Codec(), nil
	case strings.HasSuffix(path, jsonExtension):
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}
}

// SaveTrace writes a trace to path. The operation label is free-form
// provenance (e.g. "insert 5") surfaced again on replay.
func SaveTrace(path, operation string, trace heap.Trace) error {
	codec, codecErr := CodecForPath(path)
	if codecErr != nil {
		return codecErr
	}

	file, createErr := os.Create(path)
	if createErr != nil {
		return fmt.Errorf("create trace file: %w", createErr)
	}

	payload := TraceFile{
		Version:   formatVersion,
		Operation: operation,
		Steps:     trace,
	}

	encodeErr := codec.Encode(file, payload)
	if encodeErr != nil {
		file.Close()

		return encodeErr
	}

	err := file.Close()
	if err != nil {
		return fmt.Errorf("close trace file: %w", err)
	}

	return nil
}

// LoadTrace reads a trace envelope back from path.
func LoadTrace(path string) (*TraceFile, error) {
	codec, codecErr := CodecForPath(path)
	if codecErr != nil {
		return nil, codecErr
	}

	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("open trace file: %w", openErr)
	}
	defer file.Close()

	var payload TraceFile

	decodeErr := codec.Decode(file, &payload)
	if decodeErr != nil {
		return nil, decodeErr
	}

	if payload.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersionMismatch, payload.Version)
	}

	return &payload, nil
}
