package template

import (
	"fmt"
	"os"
	"strings"

	log "github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	errUtils "github.com/cfmerge/cfmerge/errors"
)

// LoadFile reads and decodes one template file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, path)
}

// Load decodes template text into a Document. Any value carrying a custom
// `!` tag is captured as a *Tagged node; everything else decodes to plain
// scalars, Sequences and Mappings with the file's key order preserved.
//
// An empty (or explicit null) document decodes to an empty mapping. Any
// other non-mapping root is rejected with errors.ErrRootNotMapping.
func Load(data []byte, path string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return &Document{Path: path, Root: NewMapping()}, nil
	}

	value, err := decodeNode(root.Content[0])
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	switch v := value.(type) {
	case *Mapping:
		log.Debug("loaded template", "file", path, "keys", v.Len())
		return &Document{Path: path, Root: v}, nil
	case nil:
		return &Document{Path: path, Root: NewMapping()}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUtils.ErrRootNotMapping, path)
	}
}

// isCustomTag reports whether the node tag is a short-form custom tag
// (e.g. !Ref) rather than a core YAML tag (!!str, !!map, ...).
func isCustomTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

func decodeNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		// Aliases are expanded; the merged output carries no anchors.
		return decodeNode(n.Alias)
	case yaml.ScalarNode:
		if isCustomTag(n.Tag) {
			// Tagged scalar payloads stay raw strings, matching the long-form
			// intrinsics which take string arguments.
			return &Tagged{Tag: n.Tag, Value: n.Value}, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		return decodeSequence(n)
	case yaml.MappingNode:
		return decodeMapping(n)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

func decodeSequence(n *yaml.Node) (Value, error) {
	seq := make(Sequence, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
	if isCustomTag(n.Tag) {
		return &Tagged{Tag: n.Tag, Value: seq}, nil
	}
	return seq, nil
}

func decodeMapping(n *yaml.Node) (Value, error) {
	m := NewMapping()
	for i := 0; i < len(n.Content)-1; i += 2 {
		keyNode := n.Content[i]
		key := keyNode.Value
		if m.Has(key) {
			return nil, fmt.Errorf("%w %q at line %d", errUtils.ErrDuplicateMappingKey, key, keyNode.Line)
		}
		v, err := decodeNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	if isCustomTag(n.Tag) {
		return &Tagged{Tag: n.Tag, Value: m}, nil
	}
	return m, nil
}
