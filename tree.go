package mdtree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NodeID is a handle to a node of a Store. The zero value refers to no node.
type NodeID int32

// NoNode is the zero NodeID.
const NoNode NodeID = 0

// Kind distinguishes the two generic node variants.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindElement
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	}
	return "invalid"
}

type record struct {
	kind     Kind
	role     Role
	props    Props
	value    string
	parent   NodeID
	children []NodeID
}

// Store is an arena holding the nodes of a generic document tree. Nodes are
// addressed by NodeID and never move, so detaching and re-parenting are
// local edits of two child lists.
//
// The store is not safe for concurrent use; mutations are expected from a
// single writer in program order.
type Store struct {
	nodes []record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make([]record, 1, 64)}
}

// Len returns the number of nodes ever created in the store, attached or not.
func (s *Store) Len() int { return len(s.nodes) - 1 }

func (s *Store) get(id NodeID) *record {
	invariant(id > NoNode && int(id) < len(s.nodes), "invalid node handle %d", id)
	return &s.nodes[id]
}

func (s *Store) alloc(r record) NodeID {
	s.nodes = append(s.nodes, r)
	return NodeID(len(s.nodes) - 1)
}

// CreateText allocates an unattached text node.
func (s *Store) CreateText(value string) NodeID {
	return s.alloc(record{kind: KindText, value: value})
}

// CreateElement allocates an unattached element node with no children.
// It fails with ErrUnsupportedRole when role is outside the vocabulary.
func (s *Store) CreateElement(role Role, props Props) (NodeID, error) {
	if !role.Valid() {
		return NoNode, &RoleError{Op: "create", Role: role, Err: ErrUnsupportedRole}
	}
	return s.alloc(record{kind: KindElement, role: role, props: props}), nil
}

// Kind returns the variant of node id.
func (s *Store) Kind(id NodeID) Kind { return s.get(id).kind }

// Role returns the role of element id, or "" for text nodes.
func (s *Store) Role(id NodeID) Role { return s.get(id).role }

// Props returns the property map of element id. The map must not be
// modified; use UpdateProperties.
func (s *Store) Props(id NodeID) Props { return s.get(id).props }

// Value returns the value of text node id.
func (s *Store) Value(id NodeID) string { return s.get(id).value }

// Parent returns the parent of id, or NoNode when detached.
func (s *Store) Parent(id NodeID) NodeID { return s.get(id).parent }

// Children returns the children of id in display order. The slice is
// owned by the store.
func (s *Store) Children(id NodeID) []NodeID { return s.get(id).children }

// IsElement reports whether id is an element of the given role.
func (s *Store) IsElement(id NodeID, role Role) bool {
	r := s.get(id)
	return r.kind == KindElement && r.role == role
}

func (s *Store) indexOf(parent, child NodeID) int {
	for i, c := range s.get(parent).children {
		if c == child {
			return i
		}
	}
	return -1
}

func (s *Store) checkAttach(parent, child NodeID) {
	p := s.get(parent)
	invariant(p.kind == KindElement, "cannot add a child to text node %d", parent)
	s.get(child)
	for a := parent; a != NoNode; a = s.nodes[a].parent {
		invariant(a != child, "node %d cannot become a descendant of itself", child)
	}
}

// detach removes child from its current parent, if any.
func (s *Store) detach(child NodeID) {
	c := s.get(child)
	if c.parent == NoNode {
		return
	}
	p := s.get(c.parent)
	if i := s.indexOf(c.parent, child); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	c.parent = NoNode
}

// AppendChild adds child at the end of parent's children, detaching it
// from its previous parent first. Parent must be an element.
func (s *Store) AppendChild(parent, child NodeID) {
	s.checkAttach(parent, child)
	s.detach(child)
	p := s.get(parent)
	p.children = append(p.children, child)
	s.get(child).parent = parent
}

// InsertBefore inserts child immediately before ref in parent's children.
// It does nothing when ref is not currently a child of parent, since
// drivers may hold stale references during reconciliation.
func (s *Store) InsertBefore(parent, child, ref NodeID) {
	s.checkAttach(parent, child)
	if child == ref || s.indexOf(parent, ref) < 0 {
		return
	}
	s.detach(child)
	i := s.indexOf(parent, ref)
	p := s.get(parent)
	p.children = append(p.children, NoNode)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = child
	s.get(child).parent = parent
}

// RemoveChild detaches child from parent if it is one of its children.
// Descendants of child keep their own links.
func (s *Store) RemoveChild(parent, child NodeID) {
	i := s.indexOf(parent, child)
	if i < 0 {
		return
	}
	p := s.get(parent)
	p.children = append(p.children[:i], p.children[i+1:]...)
	s.get(child).parent = NoNode
}

// UpdateText replaces the value of text node id.
func (s *Store) UpdateText(id NodeID, value string) {
	r := s.get(id)
	invariant(r.kind == KindText, "node %d is not a text node", id)
	r.value = value
}

// UpdateProperties replaces the property map of element id wholesale.
func (s *Store) UpdateProperties(id NodeID, props Props) {
	r := s.get(id)
	invariant(r.kind == KindElement, "node %d is not an element", id)
	r.props = props
}

// TextContent concatenates the values of all text nodes under id.
func (s *Store) TextContent(id NodeID) string {
	r := s.get(id)
	if r.kind == KindText {
		return r.value
	}
	var sb strings.Builder
	for _, c := range r.children {
		sb.WriteString(s.TextContent(c))
	}
	return sb.String()
}

// Size returns the number of nodes in the subtree rooted at id.
func (s *Store) Size(id NodeID) int {
	n := 1
	for _, c := range s.get(id).children {
		n += s.Size(c)
	}
	return n
}

// Snapshot is a plain copy of a generic subtree.
type Snapshot struct {
	Kind     Kind
	Role     Role       `json:",omitempty"`
	Props    Props      `json:",omitempty"`
	Value    string     `json:",omitempty"`
	Children []Snapshot `json:",omitempty"`
}

// Snapshot copies the subtree rooted at id.
func (s *Store) Snapshot(id NodeID) Snapshot {
	r := s.get(id)
	snap := Snapshot{Kind: r.kind, Role: r.role, Props: r.props.Clone(), Value: r.value}
	for _, c := range r.children {
		snap.Children = append(snap.Children, s.Snapshot(c))
	}
	return snap
}

// Dump renders the subtree rooted at id as an indented outline, one node
// per line, properties sorted by key.
func (s *Store) Dump(id NodeID) string {
	var sb strings.Builder
	s.dump(&sb, id, 0)
	return sb.String()
}

func (s *Store) dump(sb *strings.Builder, id NodeID, depth int) {
	r := s.get(id)
	indent := strings.Repeat("  ", depth)
	if r.kind == KindText {
		fmt.Fprintf(sb, "%stext %s\n", indent, strconv.Quote(r.value))
		return
	}
	sb.WriteString(indent)
	sb.WriteString(string(r.role))
	keys := make([]string, 0, len(r.props))
	for k := range r.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, " %s=%#v", k, r.props[k])
	}
	sb.WriteByte('\n')
	for _, c := range r.children {
		s.dump(sb, c, depth+1)
	}
}

// Container is the attachment point of top-level nodes. It owns the root
// of the tree handed to Lower.
type Container struct {
	store *Store
	root  NodeID
	index []NodeID
}

// NewContainer returns an empty container over s. It has no root until the
// first node is attached.
func NewContainer(s *Store) *Container {
	return &Container{store: s}
}

// Store returns the store the container's nodes live in.
func (c *Container) Store() *Store { return c.store }

// Root returns the current root, or NoNode when nothing has been attached.
func (c *Container) Root() NodeID { return c.root }

// AppendChild attaches n at the top level and returns its key in the
// identity index. If there is no root yet n becomes the root; if the root
// is a root-role element n is appended to it; otherwise a synthetic root
// wrapping the previous root and n replaces it.
func (c *Container) AppendChild(n NodeID) int {
	switch {
	case c.root == NoNode:
		c.store.detach(n)
		c.root = n
	case c.store.IsElement(c.root, RoleRoot):
		c.store.AppendChild(c.root, n)
	default:
		prev := c.root
		wrapper, _ := c.store.CreateElement(RoleRoot, nil)
		c.store.AppendChild(wrapper, prev)
		c.store.AppendChild(wrapper, n)
		c.root = wrapper
	}
	c.index = append(c.index, n)
	return len(c.index) - 1
}

// InsertBefore inserts n before ref at the top level. It only applies when
// the root is a root-role element containing ref; n is indexed only when
// it ends up attached.
func (c *Container) InsertBefore(n, ref NodeID) {
	if c.root == NoNode || !c.store.IsElement(c.root, RoleRoot) {
		return
	}
	c.store.InsertBefore(c.root, n, ref)
	if c.store.Parent(n) == c.root {
		c.index = append(c.index, n)
	}
}

// RemoveChild detaches n from the top level. Removing the root itself
// resets the container as Clear does.
func (c *Container) RemoveChild(n NodeID) {
	switch {
	case n == c.root:
		c.Clear()
	case c.root != NoNode:
		c.store.RemoveChild(c.root, n)
	}
}

// Clear resets the container to an empty root-role element and empties
// the identity index.
func (c *Container) Clear() {
	c.root, _ = c.store.CreateElement(RoleRoot, nil)
	c.index = c.index[:0]
}

// Lookup returns the node attached under key.
func (c *Container) Lookup(key int) (NodeID, bool) {
	if key < 0 || key >= len(c.index) {
		return NoNode, false
	}
	return c.index[key], true
}

// Attached returns every node attached since the last Clear, in order.
func (c *Container) Attached() []NodeID {
	return append([]NodeID(nil), c.index...)
}
