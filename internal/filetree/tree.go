// Package filetree derives a nested folder/file view from the flat
// project_files records. Building is pure and deterministic: no I/O, children
// sorted by name, and the same record list always yields a structurally
// identical tree.
package filetree

import (
	"sort"
	"strings"

	"modforge-backend/internal/models"
)

type NodeType string

const (
	Folder NodeType = "folder"
	File   NodeType = "file"
)

// Node is one entry in the derived tree. Folder nodes with a nil File were
// synthesized from a path segment with no record of its own; the tree
// tolerates missing parent records rather than failing.
type Node struct {
	Name     string
	Path     string
	Type     NodeType
	File     *models.ProjectFile
	Children map[string]*Node
}

// Build converts a flat record list into a nested tree rooted at an unnamed
// folder node. Intermediate folders are synthesized for every path segment
// that has no record. A record whose path collides with an implied folder
// keeps the folder's children and attaches itself to the node: children are
// never dropped regardless of input order.
func Build(files []models.ProjectFile) *Node {
	root := &Node{Type: Folder, Children: map[string]*Node{}}

	for i := range files {
		record := &files[i]
		parts := strings.Split(record.Path, "/")
		current := root

		for depth, part := range parts {
			if part == "" {
				continue
			}
			child, ok := current.Children[part]
			if !ok {
				child = &Node{
					Name:     part,
					Path:     models.JoinPath(current.Path, part),
					Type:     Folder,
					Children: map[string]*Node{},
				}
				current.Children[part] = child
			}

			if depth == len(parts)-1 {
				child.File = record
				if record.IsDirectory || len(child.Children) > 0 {
					child.Type = Folder
				} else {
					child.Type = File
				}
			} else {
				// A file record gaining descendants acts as a folder.
				child.Type = Folder
			}
			current = child
		}
	}

	return root
}

// Flatten returns the records attached to the tree in ascending path order.
// Synthesized folders carry no record and are omitted; rebuilding from the
// flattened list synthesizes them again, so Build(Flatten(Build(x))) is
// structurally identical to Build(x).
func (n *Node) Flatten() []models.ProjectFile {
	var out []models.ProjectFile
	n.Walk(func(node *Node) {
		if node.File != nil {
			out = append(out, *node.File)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Walk visits every node below n depth-first in name order. The root itself
// is not visited.
func (n *Node) Walk(fn func(*Node)) {
	for _, child := range n.SortedChildren() {
		fn(child)
		child.Walk(fn)
	}
}

// SortedChildren returns the node's children ordered by name.
func (n *Node) SortedChildren() []*Node {
	if len(n.Children) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	children := make([]*Node, len(names))
	for i, name := range names {
		children[i] = n.Children[name]
	}
	return children
}

// Lookup walks a slash-delimited path from n and reports the node it names.
func (n *Node) Lookup(path string) (*Node, bool) {
	if path == "" {
		return n, true
	}
	current := n
	for _, part := range strings.Split(path, "/") {
		child, ok := current.Children[part]
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// Equal reports whether two trees have the same structure: same names,
// types, and child sets, ignoring which concrete records are attached.
func Equal(a, b *Node) bool {
	if a.Name != b.Name || a.Type != b.Type || len(a.Children) != len(b.Children) {
		return false
	}
	for name, childA := range a.Children {
		childB, ok := b.Children[name]
		if !ok || !Equal(childA, childB) {
			return false
		}
	}
	return true
}
