// Package taxonomy loads and validates the category taxonomy used for
// classification. The taxonomy is a fixed mapping of primary category to an
// ordered list of secondary categories; it is loaded once at startup and
// rejected immediately if malformed.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// Category is one primary category with its secondary categories in file order.
type Category struct {
	Name        string
	Secondaries []string
}

// Taxonomy is the validated category tree, primary categories in file order.
type Taxonomy struct {
	Categories []Category

	secondaries map[string]map[string]bool
}

// Load reads a taxonomy from the given YAML file path. An empty path loads the
// embedded default taxonomy.
func Load(path string) (*Taxonomy, error) {
	raw := defaultTaxonomy
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("taxonomy.Load: reading %s: %w", path, err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodes and validates taxonomy YAML. Mapping order is preserved so the
// prompt and validator see categories in the order the file declares them.
func Parse(raw []byte) (*Taxonomy, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("taxonomy.Parse: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("taxonomy.Parse: empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("taxonomy.Parse: top level must be a mapping of primary category to secondary list")
	}

	tx := &Taxonomy{secondaries: make(map[string]map[string]bool)}
	for i := 0; i < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return nil, fmt.Errorf("taxonomy.Parse: empty primary category name")
		}
		if _, dup := tx.secondaries[name]; dup {
			return nil, fmt.Errorf("taxonomy.Parse: duplicate primary category %q", name)
		}

		var subs []string
		if err := valNode.Decode(&subs); err != nil {
			return nil, fmt.Errorf("taxonomy.Parse: category %q: %w", name, err)
		}
		if len(subs) == 0 {
			return nil, fmt.Errorf("taxonomy.Parse: category %q has no secondary categories", name)
		}

		set := make(map[string]bool, len(subs))
		for _, s := range subs {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("taxonomy.Parse: category %q has an empty secondary category", name)
			}
			if set[s] {
				return nil, fmt.Errorf("taxonomy.Parse: category %q has duplicate secondary %q", name, s)
			}
			set[s] = true
		}

		tx.Categories = append(tx.Categories, Category{Name: name, Secondaries: subs})
		tx.secondaries[name] = set
	}

	if len(tx.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy.Parse: no categories defined")
	}
	return tx, nil
}

// Validate checks that a primary/secondary pair exists in the taxonomy.
func (tx *Taxonomy) Validate(primary, secondary string) error {
	subs, ok := tx.secondaries[strings.TrimSpace(primary)]
	if !ok {
		return fmt.Errorf("taxonomy.Validate: unknown primary category %q", primary)
	}
	if !subs[strings.TrimSpace(secondary)] {
		return fmt.Errorf("taxonomy.Validate: unknown secondary category %q under %q", secondary, primary)
	}
	return nil
}

// PromptJSON renders the taxonomy as the nested JSON mapping embedded in the
// classification system instruction, preserving declaration order.
func (tx *Taxonomy) PromptJSON() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, cat := range tx.Categories {
		fmt.Fprintf(&b, "  %q: [", cat.Name)
		for j, s := range cat.Secondaries {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", s)
		}
		b.WriteString("]")
		if i < len(tx.Categories)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
