package compose

import (
	"io"

	"github.com/growler/go-mdtree"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Decode reads a YAML (or JSON) document description. The document is a
// single node or a sequence of top-level nodes. A scalar is a Text leaf; a
// mapping is an element:
//
//	[
//	  {role: heading, props: {depth: 1}, children: [Title]},
//	  {role: paragraph, children: ["Some ", {role: strong, children: [bold]}, " text."]}
//	]
func Decode(r io.Reader) ([]Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not decode document")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		n, err := decodeNode(root)
		if err != nil {
			return nil, err
		}
		return []Node{n}, nil
	}
	return decodeNodes(root.Content)
}

type elementDesc struct {
	Role     string         `yaml:"role"`
	Props    map[string]any `yaml:"props"`
	Children []yaml.Node    `yaml:"children"`
}

func decodeNodes(content []*yaml.Node) ([]Node, error) {
	nodes := make([]Node, 0, len(content))
	for _, c := range content {
		n, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(value *yaml.Node) (Node, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		return Text(value.Value), nil
	case yaml.MappingNode:
		var desc elementDesc
		if err := value.Decode(&desc); err != nil {
			return nil, errors.Wrapf(err, "line %d", value.Line)
		}
		role, err := mdtree.ParseRole(desc.Role)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", value.Line)
		}
		children := make([]*yaml.Node, len(desc.Children))
		for i := range desc.Children {
			children[i] = &desc.Children[i]
		}
		nodes, err := decodeNodes(children)
		if err != nil {
			return nil, err
		}
		return El(role, mdtree.Props(desc.Props), nodes...), nil
	case yaml.AliasNode:
		return decodeNode(value.Alias)
	}
	return nil, errors.Errorf("line %d: expected text or element", value.Line)
}
