// Parameter tree arena: build, index and refresh a named parameter set
package params

import "strings"

// TypedParam is one entry of a live node's parameter listing: a flat name,
// a raw value and the node-reported type label.
type TypedParam struct {
	Name string
	Raw  interface{}
	Type string
}

// PathParam is one entry of a flat dotted-path mapping, as produced by a
// parameter file. The type is derived from the raw value.
type PathParam struct {
	Path string
	Raw  interface{}
}

// Node is a single entry in the tree arena: either a group (path prefix,
// ordered children, no value) or a leaf (typed value, no children).
type Node struct {
	Path     string // full dotted path, unique, stable for the node's lifetime
	Name     string // last path segment
	Category Category
	Group    bool

	value    Value  // current typed value (leaves)
	prev     Value  // previous-accepted value, rollback target
	display  string // on-screen text of the value column
	children []string
	parent   string
}

func (n *Node) Value() Value    { return n.value }
func (n *Node) Display() string { return n.display }
func (n *Node) Parent() string  { return n.parent }

// Set owns every node of one parameter tree. Nodes are addressed by their
// full path; the leaf index is the only structure holding ownership
// handles, and display code keeps nothing but path strings.
type Set struct {
	nodes  map[string]*Node
	leaves map[string]*Node
	roots  []string

	refreshing bool
	listeners  []func(path string, v Value)
}

func NewSet() *Set {
	return &Set{
		nodes:  make(map[string]*Node),
		leaves: make(map[string]*Node),
	}
}

// SetParameters replaces the whole tree with a live node's flat parameter
// listing. Every entry becomes one leaf directly under the root, in the
// order supplied.
func (s *Set) SetParameters(nodeName string, entries []TypedParam) {
	defer s.suppress()()
	s.reset()
	for _, e := range entries {
		// when the raw value cannot be coerced to the labeled category,
		// the leaf takes the value's actual tag so the two never diverge
		v := Coerce(e.Raw, Categorize(e.Type))
		s.addLeaf("", e.Name, e.Name, v, v.Category())
	}
}

// SetPathParameters replaces the whole tree with a flat dotted-path
// mapping. Proper path prefixes become group nodes, created lazily and
// shared between paths; the last segment becomes the leaf. Entry order
// fixes sibling order.
func (s *Set) SetPathParameters(entries []PathParam) {
	defer s.suppress()()
	s.reset()
	for _, e := range entries {
		parts := strings.Split(e.Path, ".")
		parentPath := ""
		conflict := false
		for i := 0; i < len(parts)-1; i++ {
			prefix := strings.Join(parts[:i+1], ".")
			if n, ok := s.nodes[prefix]; ok {
				if !n.Group {
					// prefix already taken by a leaf; nothing can nest
					// under it, so drop this entry instead of corrupting
					// the leaf's node
					conflict = true
					break
				}
			} else {
				s.addGroup(parentPath, prefix, parts[i])
			}
			parentPath = prefix
		}
		if conflict {
			continue
		}
		if _, ok := s.nodes[e.Path]; ok {
			// duplicate path, or the path already exists as a group
			continue
		}
		v := FromRaw(e.Raw)
		s.addLeaf(parentPath, e.Path, parts[len(parts)-1], v, v.Category())
	}
}

// UpdateValues is the programmatic refresh path. Paths absent from the
// current index are ignored; a value whose string form already matches
// the displayed text mutates nothing. Refresh never emits change events
// and never opens an editor.
func (s *Set) UpdateValues(updates []PathParam) {
	defer s.suppress()()
	for _, u := range updates {
		leaf, ok := s.leaves[u.Path]
		if !ok {
			continue
		}
		v := Coerce(u.Raw, leaf.Category)
		if v.Category() != leaf.Category {
			// raw does not fit the leaf's category; retagging the value
			// is reserved for validated edits, so keep the prior one
			continue
		}
		if v.Display() == leaf.display {
			continue
		}
		leaf.value = v
		leaf.prev = v
		leaf.display = v.Display()
	}
}

// Leaf returns the node for a full path, if it is a leaf in the current
// index.
func (s *Set) Leaf(path string) (*Node, bool) {
	n, ok := s.leaves[path]
	return n, ok
}

// Node returns any node, group or leaf, by full path.
func (s *Set) Node(path string) (*Node, bool) {
	n, ok := s.nodes[path]
	return n, ok
}

// Children returns the ordered child paths of a group, or of the root
// when path is empty.
func (s *Set) Children(path string) []string {
	if path == "" {
		return s.roots
	}
	if n, ok := s.nodes[path]; ok {
		return n.children
	}
	return nil
}

// IsBranch reports whether the path names a group node.
func (s *Set) IsBranch(path string) bool {
	if path == "" {
		return true
	}
	n, ok := s.nodes[path]
	return ok && n.Group
}

// LeafCount is the number of indexed leaves.
func (s *Set) LeafCount() int { return len(s.leaves) }

// LeafPaths returns every indexed leaf path in display order.
func (s *Set) LeafPaths() []string {
	var out []string
	var walk func(paths []string)
	walk = func(paths []string) {
		for _, p := range paths {
			n := s.nodes[p]
			if n.Group {
				walk(n.children)
			} else {
				out = append(out, p)
			}
		}
	}
	walk(s.roots)
	return out
}

func (s *Set) reset() {
	s.nodes = make(map[string]*Node)
	s.leaves = make(map[string]*Node)
	s.roots = nil
}

func (s *Set) addGroup(parent, path, name string) {
	n := &Node{Path: path, Name: name, Group: true, parent: parent}
	s.nodes[path] = n
	s.attach(parent, path)
}

func (s *Set) addLeaf(parent, path, name string, v Value, cat Category) {
	n := &Node{
		Path:     path,
		Name:     name,
		Category: cat,
		value:    v,
		prev:     v,
		display:  v.Display(),
		parent:   parent,
	}
	s.nodes[path] = n
	s.leaves[path] = n
	s.attach(parent, path)
}

func (s *Set) attach(parent, path string) {
	if parent == "" {
		s.roots = append(s.roots, path)
		return
	}
	p := s.nodes[parent]
	p.children = append(p.children, path)
}
