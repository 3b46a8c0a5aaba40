// Package serializer provides the persisted encodings of the thought sequence.
package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/thoughts/pkg/core"
)

// Format names.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ForFormat returns the codec registered under name.
func ForFormat(name string) (core.Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatJSON:
		return NewJSONSerializer(), nil
	case FormatYAML, "yml":
		return NewYAMLSerializer(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", name)
	}
}

// Extension returns the file extension conventionally used for codec.
func Extension(codec core.Codec) string {
	return "." + codec.Name()
}

// --- JSON Serializer ---

// JSONSerializer writes the sequence as a JSON array of
// {id, content, category, timestamp} objects.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Name() string { return FormatJSON }

func (s *JSONSerializer) Marshal(thoughts []core.Thought) ([]byte, error) {
	if thoughts == nil {
		thoughts = []core.Thought{}
	}
	return json.Marshal(thoughts)
}

func (s *JSONSerializer) Unmarshal(data []byte) ([]core.Thought, error) {
	var thoughts []core.Thought
	if err := json.Unmarshal(data, &thoughts); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return thoughts, nil
}

// --- YAML Serializer ---

// YAMLSerializer writes the sequence as a YAML list with the same fields.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Name() string { return FormatYAML }

func (s *YAMLSerializer) Marshal(thoughts []core.Thought) ([]byte, error) {
	if thoughts == nil {
		thoughts = []core.Thought{}
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(thoughts); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *YAMLSerializer) Unmarshal(data []byte) ([]core.Thought, error) {
	var thoughts []core.Thought
	if err := yaml.Unmarshal(data, &thoughts); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return thoughts, nil
}

var (
	_ core.Codec = (*JSONSerializer)(nil)
	_ core.Codec = (*YAMLSerializer)(nil)
)
