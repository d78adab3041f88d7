// Package structured turns model output into typed values. A value is only
// returned once the raw JSON has passed the schema generated from its type.
package structured

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	"github.com/xeipuuv/gojsonschema"
)

type Schema[T any] struct {
	name     string
	raw      []byte
	compiled *gojsonschema.Schema
}

func For[T any](name string) (*Schema[T], error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	s := reflector.Reflect(v)
	s.Version = ""
	s.ID = ""

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", name, err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}

	return &Schema[T]{
		name:     name,
		raw:      raw,
		compiled: compiled,
	}, nil
}

func MustFor[T any](name string) *Schema[T] {
	s, err := For[T](name)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema[T]) Name() string {
	return s.name
}

// JSON is the schema document, suitable for embedding in instructions.
func (s *Schema[T]) JSON() string {
	return string(s.raw)
}

// Decode validates content against the schema and decodes it strictly.
// Any failure wraps contract.ErrSchemaValidation.
func (s *Schema[T]) Decode(content string) (T, error) {
	var zero T

	body := stripCodeFence(content)
	if body == "" {
		return zero, fmt.Errorf("%w: %s output is empty", contractx.ErrSchemaValidation, s.name)
	}

	result, err := s.compiled.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return zero, fmt.Errorf("%w: %s output is not json: %v", contractx.ErrSchemaValidation, s.name, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return zero, fmt.Errorf("%w: %s: %s", contractx.ErrSchemaValidation, s.name, strings.Join(errs, "; "))
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()
	var out T
	if err := dec.Decode(&out); err != nil {
		return zero, fmt.Errorf("%w: decode %s: %v", contractx.ErrSchemaValidation, s.name, err)
	}
	return out, nil
}

// Models frequently wrap JSON in a markdown fence even when told not to.
func stripCodeFence(content string) string {
	body := strings.TrimSpace(content)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
