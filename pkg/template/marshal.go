package template

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultIndent is the YAML indent used when no option is given.
const DefaultIndent = 2

// EncodeOptions controls serialization.
type EncodeOptions struct {
	Indent int
}

// Marshal serializes a Document back to YAML text. The document is first
// converted to a yaml.Node tree, so key order is emitted exactly as stored
// (the encoder's map-key sorting never applies) and Tagged values are
// re-emitted with their original tag and shape.
func Marshal(doc *Document, opts ...EncodeOptions) ([]byte, error) {
	node, err := encodeValue(doc.Root)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)

	indent := DefaultIndent
	if len(opts) > 0 && opts[0].Indent > 0 {
		indent = opts[0].Indent
	}
	encoder.SetIndent(indent)

	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", doc.Path, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", doc.Path, err)
	}
	return buf.Bytes(), nil
}

func encodeValue(v Value) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range t.Keys() {
			item, _ := t.Get(key)
			valNode, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
			n.Content = append(n.Content, keyNode, valNode)
		}
		return n, nil
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			valNode, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, valNode)
		}
		return n, nil
	case *Tagged:
		n, err := encodeValue(t.Value)
		if err != nil {
			return nil, err
		}
		n.Tag = t.Tag
		return n, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}
