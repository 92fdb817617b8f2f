package stylesnap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one visited element: its structural path and computed styles.
type Node struct {
	Path  string      `json:"path"`
	Props PropertySet `json:"props"`
}

// Snapshot maps structural paths to property sets in traversal order
// (pre-order, root first, children left to right). Paths are unique: adding
// a path that already exists replaces its properties in place.
type Snapshot struct {
	nodes []Node
	index map[string]int
}

// Add appends a node, or replaces the properties of an existing path.
func (s *Snapshot) Add(path string, props PropertySet) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[path]; ok {
		s.nodes[i].Props = props
		return
	}
	s.index[path] = len(s.nodes)
	s.nodes = append(s.nodes, Node{Path: path, Props: props})
}

// Len returns the number of nodes.
func (s Snapshot) Len() int { return len(s.nodes) }

// Get returns the properties recorded for path.
func (s Snapshot) Get(path string) (PropertySet, bool) {
	i, ok := s.index[path]
	if !ok {
		return PropertySet{}, false
	}
	return s.nodes[i].Props, true
}

// Nodes returns the nodes in traversal order. The slice is a copy; the
// property sets are shared and must be treated as read-only.
func (s Snapshot) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Paths returns the structural paths in traversal order.
func (s Snapshot) Paths() []string {
	out := make([]string, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.Path
	}
	return out
}

// Declarations counts properties over all nodes.
func (s Snapshot) Declarations() int {
	n := 0
	for _, node := range s.nodes {
		n += node.Props.Len()
	}
	return n
}

// MarshalJSON encodes the snapshot as {path: {prop: value}} in traversal order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range s.nodes {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKV(&buf, n.Path, n.Props); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes {path: {prop: value}} keeping path order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	*s = Snapshot{}
	dec := json.NewDecoder(bytes.NewReader(data))
	ok, err := openObject(dec)
	if err != nil || !ok {
		return err
	}
	for dec.More() {
		path, err := objectKey(dec)
		if err != nil {
			return err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("stylesnap: node %q: %w", path, err)
		}
		var props PropertySet
		if err := props.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("stylesnap: node %q: %w", path, err)
		}
		s.Add(path, props)
	}
	_, err = dec.Token()
	return err
}
