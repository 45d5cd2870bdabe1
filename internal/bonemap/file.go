package bonemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rig-retarget/internal/common"
)

// File is the YAML representation of a table.
type File struct {
	Version string    `yaml:"version"`
	Tag     string    `yaml:"tag,omitempty"`
	Roots   Roots     `yaml:"roots,omitempty"`
	IKFK    IKFK      `yaml:"ikfk,omitempty"`
	Bones   BonePairs `yaml:"bones"`
}

// Roots names the root bone on each side.
type Roots struct {
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`
}

// IKFK describes where the target rig keeps its limb IK/FK blend.
type IKFK struct {
	Property string          `yaml:"property,omitempty"`
	Toggles  map[Limb]string `yaml:"toggles,omitempty"`
}

// BonePairs is an ordered source to target mapping.
type BonePairs []Entry

// UnmarshalYAML decodes a mapping node keeping key order. Duplicate keys are
// rejected.
func (p *BonePairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: bones must be a mapping, got %v", node.Line, node.Kind)
	}

	pairs := make(BonePairs, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var src, dst string

		if err := node.Content[i].Decode(&src); err != nil {
			return err
		}

		if err := node.Content[i+1].Decode(&dst); err != nil {
			return err
		}

		if _, ok := seen[src]; ok {
			return fmt.Errorf("line %d: %w: %q", node.Content[i].Line, ErrDuplicateSource, src)
		}

		seen[src] = struct{}{}
		pairs = append(pairs, Entry{Source: src, Target: dst})
	}

	*p = pairs

	return nil
}

// MarshalYAML encodes the pairs as a mapping node in order.
func (p BonePairs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Source},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Target},
		)
	}

	return node, nil
}

// LoadFile loads a table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bone map %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a table.
func Parse(data []byte) (*Table, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bone map YAML: %w", err)
	}

	applyDefaults(&f)

	t, err := New(f.config())
	if err != nil {
		return nil, fmt.Errorf("invalid bone map: %w", err)
	}

	return t, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if common.IsEmpty(f.Bones) {
		f.Bones = BonePairs(defaultEntries)
	}
}

func (f *File) config() Config {
	return Config{
		Entries:        f.Bones,
		SourceRoot:     f.Roots.Source,
		TargetRoot:     f.Roots.Target,
		Toggles:        f.IKFK.Toggles,
		ToggleProperty: f.IKFK.Property,
		Tag:            f.Tag,
	}
}

// ToFile converts a table back to its YAML representation with every
// section spelled out.
func (t *Table) ToFile() *File {
	return &File{
		Version: "1",
		Tag:     t.tag,
		Roots:   Roots{Source: t.sourceRoot, Target: t.targetRoot},
		IKFK:    IKFK{Property: t.toggleProperty, Toggles: t.Toggles()},
		Bones:   BonePairs(t.Entries()),
	}
}

// Marshal serializes a table to YAML.
func Marshal(t *Table) ([]byte, error) {
	return yaml.Marshal(t.ToFile())
}

// WriteFile writes a table to the given path.
func WriteFile(t *Table, path string) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal bone map: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bone map %s: %w", path, err)
	}

	return nil
}
