package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ── Collection Registry ────────────────────────────────────
// Static mapping from collection name to destination prefix and
// field schema. Fixed at startup, immutable afterwards.

// FieldType is the semantic type a field is coerced to before export.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeDate   FieldType = "date"
)

// FieldSpec declares one field of a collection schema.
type FieldSpec struct {
	Name string    `yaml:"name"`
	Type FieldType `yaml:"type"`
}

// Collection describes one exportable collection: where its file lands
// in the bucket and how its fields are typed.
type Collection struct {
	Name   string      `yaml:"name"`
	Prefix string      `yaml:"prefix"`
	Schema []FieldSpec `yaml:"schema"`
}

// FileName returns the export artifact name for this collection.
func (c Collection) FileName() string {
	return c.Name + ".json"
}

// Key returns the full object key under the destination bucket.
func (c Collection) Key() string {
	return c.Prefix + c.FileName()
}

// tiktokMetricsSchema is shared by the user and admin metrics collections;
// only the trailing owner id field differs.
func tiktokMetricsSchema(ownerField string) []FieldSpec {
	return []FieldSpec{
		{Name: "postId", Type: TypeString},
		{Name: "datePosted", Type: TypeDate},
		{Name: "hourPosted", Type: TypeString},
		{Name: "usernameTiktokAccount", Type: TypeString},
		{Name: "postURL", Type: TypeString},
		{Name: "views", Type: TypeInt},
		{Name: "likes", Type: TypeInt},
		{Name: "comments", Type: TypeInt},
		{Name: "saves", Type: TypeInt},
		{Name: "reposts", Type: TypeInt},
		{Name: "totalInteractions", Type: TypeInt},
		{Name: "engagement", Type: TypeFloat},
		{Name: "numberHashtags", Type: TypeInt},
		{Name: "hashtags", Type: TypeString},
		{Name: "soundId", Type: TypeString},
		{Name: "soundURL", Type: TypeString},
		{Name: "regionPost", Type: TypeString},
		{Name: "dateTracking", Type: TypeDate},
		{Name: "timeTracking", Type: TypeString},
		{Name: ownerField, Type: TypeInt},
	}
}

// Default returns the built-in collection table.
func Default() []Collection {
	return []Collection{
		{
			Name:   "UserTiktokMetrics",
			Prefix: "user_tiktok_metrics/",
			Schema: tiktokMetricsSchema("userId"),
		},
		{
			Name:   "AdminTiktokMetrics",
			Prefix: "admin_tiktok_metrics/",
			Schema: tiktokMetricsSchema("adminId"),
		},
	}
}

// LoadFile reads a registry file (YAML list of collections) and validates it.
// A missing prefix defaults to "<name>/". The result replaces the built-in
// table wholesale.
func LoadFile(path string) ([]Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates registry YAML.
func Parse(data []byte) ([]Collection, error) {
	var cols []Collection
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("registry is empty")
	}

	seen := make(map[string]bool, len(cols))
	for i := range cols {
		c := &cols[i]
		if c.Name == "" {
			return nil, fmt.Errorf("collection %d: name is required", i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("collection %q: duplicate name", c.Name)
		}
		seen[c.Name] = true
		if c.Prefix == "" {
			c.Prefix = c.Name + "/"
		}
		for _, f := range c.Schema {
			if f.Name == "" {
				return nil, fmt.Errorf("collection %q: field with empty name", c.Name)
			}
			switch f.Type {
			case TypeString, TypeInt, TypeFloat, TypeDate:
			default:
				return nil, fmt.Errorf("collection %q: field %q: unknown type %q", c.Name, f.Name, f.Type)
			}
		}
	}
	return cols, nil
}
