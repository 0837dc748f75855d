package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/cofiy/pkg/core"
)

// Serializer defines how the store document is read and written.
type Serializer interface {
	// Parse reads from r and returns a Document.
	Parse(r io.Reader) (core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// DefaultSerializers returns the serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer reads and writes the canonical pretty-printed JSON form.
type JSONSerializer struct {
	Indent string
}

// NewJSONSerializer creates a JSON serializer using a two-space indent.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Parse(r io.Reader) (core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Document{}, err
	}
	var doc core.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return core.Document{}, fmt.Errorf("invalid json: %w", err)
	}
	if doc.Companies == nil {
		doc.Companies = []core.Company{}
	}
	return doc, nil
}

func (s *JSONSerializer) Serialize(doc core.Document) ([]byte, error) {
	if doc.Companies == nil {
		doc.Companies = []core.Company{}
	}
	return json.MarshalIndent(doc, "", s.Indent)
}

// --- YAML Serializer ---

// YAMLSerializer keeps the document as YAML for hand editing.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Document{}, err
	}
	var doc core.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return core.Document{}, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.Companies == nil {
		doc.Companies = []core.Company{}
	}
	return doc, nil
}

func (s *YAMLSerializer) Serialize(doc core.Document) ([]byte, error) {
	if doc.Companies == nil {
		doc.Companies = []core.Company{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
