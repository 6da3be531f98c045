package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ettle/strcase"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// ScreenManifestDocument models a YAML/JSON manifest describing the admin
// screens: one table engine, configured per entity kind.
type ScreenManifestDocument struct {
	Version string             `json:"version" yaml:"version"`
	Name    string             `json:"name,omitempty" yaml:"name,omitempty"`
	Screens []ScreenDefinition `json:"screens" yaml:"screens"`
	Source  string             `json:"-" yaml:"-"`
}

// ScreenDefinition is the declarative half of a screen configuration: the
// entity kind, its page size, its sortable columns and searchable fields.
// The Go half (value accessors and filter predicates) binds at registration.
type ScreenDefinition struct {
	Kind        EntityKind         `json:"kind" yaml:"kind"`
	Title       string             `json:"title,omitempty" yaml:"title,omitempty"`
	PageSize    int                `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Columns     []ColumnDefinition `json:"columns" yaml:"columns"`
	Searchable  []string           `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	Filters     []string           `json:"filters,omitempty" yaml:"filters,omitempty"`
	DefaultSort SortSpec           `json:"default_sort,omitempty" yaml:"default_sort,omitempty"`
}

// ColumnDefinition declares one sortable column.
type ColumnDefinition struct {
	Field string `json:"field" yaml:"field"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// ColumnTitle derives a display title from a snake_case field name.
func ColumnTitle(field string) string {
	return strcase.ToCase(field, strcase.TitleCase, ' ')
}

// Title returns the declared title, or one derived from the field name.
func (c ColumnDefinition) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return ColumnTitle(c.Field)
}

// CompareKind maps the declared comparator name to the engine's kind.
func (c ColumnDefinition) CompareKind() (CompareKind, error) {
	switch c.Kind {
	case "", "lexical":
		return CompareLexical, nil
	case "numeric":
		return CompareNumeric, nil
	case "bool":
		return CompareBool, nil
	case "time":
		return CompareTime, nil
	case "lookup":
		return CompareLookup, nil
	}
	return CompareLexical, fmt.Errorf("console: unknown comparator kind %q for column %s", c.Kind, c.Field)
}

// screenManifestSchema validates decoded manifests before registration.
const screenManifestSchema = `{
  "type": "object",
  "required": ["version", "screens"],
  "properties": {
    "version": {"type": "string", "enum": ["1"]},
    "name": {"type": "string"},
    "screens": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["kind", "columns"],
        "properties": {
          "kind": {
            "type": "string",
            "enum": ["apis", "exchanges", "categories", "services", "orders", "payments", "users"]
          },
          "title": {"type": "string"},
          "page_size": {"type": "integer", "minimum": 1, "maximum": 100},
          "columns": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["field"],
              "properties": {
                "field": {"type": "string", "minLength": 1},
                "kind": {"type": "string", "enum": ["lexical", "numeric", "bool", "time", "lookup"]},
                "title": {"type": "string"}
              }
            }
          },
          "searchable": {"type": "array", "items": {"type": "string"}},
          "filters": {"type": "array", "items": {"type": "string"}},
          "default_sort": {
            "type": "object",
            "properties": {
              "field": {"type": "string"},
              "direction": {"type": "string", "enum": ["asc", "desc"]}
            }
          }
        }
      }
    }
  }
}`

var compiledManifestSchema = jsonschema.MustCompileString("screen-manifest.json", screenManifestSchema)

// ReadScreenManifest loads a manifest file from disk.
func ReadScreenManifest(path string) (*ScreenManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeScreenManifest(f)
	if err != nil {
		return nil, fmt.Errorf("console: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeScreenManifest reads a manifest from any reader and validates it
// against the manifest schema.
func DecodeScreenManifest(r io.Reader) (*ScreenManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc ScreenManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("console: manifest is empty")
		}
		return nil, fmt.Errorf("console: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the manifest against the JSON Schema plus the structural
// rules the schema cannot express (duplicate kinds, sortable default sort).
func (doc *ScreenManifestDocument) Validate() error {
	payload, err := normalizeForSchema(doc)
	if err != nil {
		return err
	}
	if err := compiledManifestSchema.Validate(payload); err != nil {
		return fmt.Errorf("console: manifest failed validation: %w", err)
	}
	seen := make(map[EntityKind]struct{}, len(doc.Screens))
	for _, screen := range doc.Screens {
		if _, exists := seen[screen.Kind]; exists {
			return fmt.Errorf("console: manifest duplicates screen kind %s", screen.Kind)
		}
		seen[screen.Kind] = struct{}{}
		columns := make(map[string]struct{}, len(screen.Columns))
		for _, col := range screen.Columns {
			if _, err := col.CompareKind(); err != nil {
				return err
			}
			columns[col.Field] = struct{}{}
		}
		if field := screen.DefaultSort.Field; field != "" {
			if _, ok := columns[field]; !ok {
				return fmt.Errorf("console: screen %s default sort references unknown column %q", screen.Kind, field)
			}
		}
		for _, field := range screen.Searchable {
			if _, ok := columns[field]; !ok {
				return fmt.Errorf("console: screen %s searchable field %q is not a column", screen.Kind, field)
			}
		}
	}
	return nil
}

func (doc *ScreenManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Screens {
		if doc.Screens[i].PageSize == 0 {
			doc.Screens[i].PageSize = DefaultPageSize
		}
	}
}

// normalizeForSchema round-trips the document through JSON so the schema
// validator sees plain maps and numbers.
func normalizeForSchema(doc *ScreenManifestDocument) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("console: marshal manifest: %w", err)
	}
	var payload any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("console: normalize manifest: %w", err)
	}
	return payload, nil
}
