package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Render writes a derived result to w as JSON or YAML. Neither the
// run-control surface nor the CLI calls it.
type Render interface {
	Write(w io.Writer, v any) error
}

// JSONRender writes compact JSON.
type JSONRender struct{}

func (JSONRender) Write(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// YAMLRender writes YAML with every innermost one-dimensional sequence
// forced to flow style ([a, b, c]) so per-bucket arrays stay on one line
// instead of exploding into one line per element.
type YAMLRender struct{}

func (YAMLRender) Write(w io.Writer, v any) error {
	return forceReadableList(w, v)
}

func forceReadableList(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

// styleReadableSequences walks the tree and flow-styles every sequence node
// that holds no child sequence (the innermost dimension); outer dimensions
// keep the default block style so nested arrays still read top to bottom.
func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		return

	case yaml.SequenceNode:
		hasChildSeq := false
		for _, c := range n.Content {
			if c != nil && c.Kind == yaml.SequenceNode {
				hasChildSeq = true
				break
			}
		}
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		if !hasChildSeq {
			n.Style = yaml.FlowStyle
		}
		return

	default:
		return
	}
}
