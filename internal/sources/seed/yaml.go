package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const maxAliasDepth = 32

// yamlToJSON converts a single YAML document to JSON. Mapping keys keep
// their document order, which decoding into map[string]any would lose.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 {
		return nil, errors.New("parse yaml: empty document")
	}

	var buf bytes.Buffer
	if err := writeNode(&buf, &doc, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Content[0], depth)

	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return fmt.Errorf("yaml line %d: alias nesting too deep", n.Line)
		}
		return writeNode(buf, n.Alias, depth+1)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNode(buf, n.Content[i+1], depth); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item, depth); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("yaml line %d: %w", n.Line, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("yaml line %d: %w", n.Line, err)
		}
		buf.Write(out)
		return nil

	default:
		return fmt.Errorf("yaml line %d: unsupported node kind %v", n.Line, n.Kind)
	}
}
