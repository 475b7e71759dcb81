// Package compose describes documents declaratively and mounts them onto
// a generic tree.
//
// A description is a tree of Node values: Text leaves and Element nodes
// carrying a role, properties and children. Mount replays a description as
// the create/append mutation stream a Container expects, attaching each
// top-level node in order.
package compose

import (
	"github.com/growler/go-mdtree"
	"github.com/pkg/errors"
)

// Node is a document description.
type Node interface {
	build(s *mdtree.Store) (mdtree.NodeID, error)
}

// Text is a text leaf.
type Text string

func (t Text) build(s *mdtree.Store) (mdtree.NodeID, error) {
	return s.CreateText(string(t)), nil
}

// Element is an element description.
type Element struct {
	Role     mdtree.Role
	Props    mdtree.Props
	Children []Node
}

// El describes an element.
func El(role mdtree.Role, props mdtree.Props, children ...Node) *Element {
	return &Element{Role: role, Props: props, Children: children}
}

func (e *Element) build(s *mdtree.Store) (mdtree.NodeID, error) {
	id, err := s.CreateElement(e.Role, e.Props)
	if err != nil {
		return mdtree.NoNode, err
	}
	for i, c := range e.Children {
		if c == nil {
			continue
		}
		child, err := c.build(s)
		if err != nil {
			return mdtree.NoNode, errors.Wrapf(err, "%s child %d", e.Role, i)
		}
		s.AppendChild(id, child)
	}
	return id, nil
}

// Build creates the nodes of n in s and returns the unattached root.
func Build(s *mdtree.Store, n Node) (mdtree.NodeID, error) {
	return n.build(s)
}

// Mount builds every node and attaches it to c at the top level, in
// order. Nodes built before a failing one stay attached.
func Mount(c *mdtree.Container, nodes ...Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		id, err := n.build(c.Store())
		if err != nil {
			return err
		}
		c.AppendChild(id)
	}
	return nil
}

// Render mounts nodes onto a fresh container and renders it.
func Render(r *mdtree.Renderer, nodes ...Node) (string, error) {
	c := mdtree.NewContainer(mdtree.NewStore())
	if err := Mount(c, nodes...); err != nil {
		return "", err
	}
	return r.RenderContainer(c)
}
