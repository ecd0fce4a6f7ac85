// Package script parses and validates replayable heap operation scripts,
// either from YAML/JSON files or from inline command-line tokens.
package script

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Operation kinds accepted in scripts and inline tokens.
const (
	OpInsert       = "insert"
	OpInsertRandom = "insert-random"
	OpDeleteMin    = "delete-min"
)

// insertSeparator splits an inline insert token into kind and value.
const insertSeparator = ":"

//go:embed schema.json
var schemaJSON []byte

// Sentinel errors for script loading.
var (
	// ErrSchemaViolation indicates the script failed JSON schema validation.
	ErrSchemaViolation = errors.New("script does not match schema")
	// ErrEmptyScript indicates the script contains no operations.
	ErrEmptyScript = errors.New("script contains no operations")
)

// Operation is one scripted heap operation. Value is meaningful only for
// OpInsert.
type Operation struct {
	Op    string `json:"op"              yaml:"op"`
	Value int    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Script is an ordered list of operations to animate.
type Script struct {
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Load reads a YAML or JSON script file, validates it against the
// embedded schema, and returns the typed script.
func Load(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return Parse(raw)
}

// Parse validates and decodes raw YAML or JSON script bytes. JSON is a
// YAML subset, so a single decode path covers both formats; validation
// always runs against the canonical JSON form.
func Parse(raw []byte) (*Script, error) {
	var doc any

	unmarshalErr := yaml.Unmarshal(raw, &doc)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("decode script: %w", unmarshalErr)
	}

	canonical, marshalErr := json.Marshal(normalizeKeys(doc))
	if marshalErr != nil {
		return nil, fmt.Errorf("canonicalize script: %w", marshalErr)
	}

	validateErr := validate(canonical)
	if validateErr != nil {
		return nil, validateErr
	}

	var s Script

	decodeErr := json.Unmarshal(canonical, &s)
	if decodeErr != nil {
		return nil, fmt.Errorf("decode script: %w", decodeErr)
	}

	if len(s.Operations) == 0 {
		return nil, ErrEmptyScript
	}

	return &s, nil
}

// validate checks the canonical JSON document against the embedded schema.
func validate(canonical []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(canonical),
	)
	if err != nil {
		return fmt.Errorf("validate script: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		details = append(details, verr.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
}

// normalizeKeys rewrites yaml.v3's map[string]any-compatible trees into
// JSON-marshalable values. yaml.v3 already produces string keys for
// mappings, so this only needs to walk containers.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeKeys(val)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeKeys(val)
		}

		return out
	default:
		return v
	}
}

// ParseArgs interprets inline tokens ("insert:5", "insert-random",
// "delete-min"). Malformed tokens are not fatal: they come back in
// skipped, and the caller decides how loudly to report them. A
// non-numeric insert value is a skipped no-op.
func ParseArgs(args []string) (ops []Operation, skipped []string) {
	for _, arg := range args {
		switch {
		case arg == OpInsertRandom:
			ops = append(ops, Operation{Op: OpInsertRandom})
		case arg == OpDeleteMin:
			ops = append(ops, Operation{Op: OpDeleteMin})
		case strings.HasPrefix(arg, OpInsert+insertSeparator):
			value, err := strconv.Atoi(strings.TrimPrefix(arg, OpInsert+insertSeparator))
			if err != nil {
				skipped = append(skipped, arg)

				continue
			}

			ops = append(ops, Operation{Op: OpInsert, Value: value})
		default:
			skipped = append(skipped, arg)
		}
	}

	return ops, skipped
}

// Resolve replaces every insert-random with a concrete value drawn from
// [minValue, maxValue] using rng, leaving other operations untouched.
// The result depends only on the input script and the rng stream.
func Resolve(s *Script, rng *rand.Rand, minValue, maxValue int) []Operation {
	if maxValue < minValue {
		minValue, maxValue = maxValue, minValue
	}

	resolved := make([]Operation, len(s.Operations))

	for i, op := range s.Operations {
		if op.Op == OpInsertRandom {
			op = Operation{Op: OpInsert, Value: minValue + rng.Intn(maxValue-minValue+1)}
		}

		resolved[i] = op
	}

	return resolved
}
