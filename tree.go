package fileaddr

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Node is one path segment in the address tree.
type Node struct {
	Name     string
	SizeMB   float64
	IsFile   bool // only files carry a size
	Children []*Node

	parent *Node
	key    string // normalized slash-joined prefix
	source string // path as it should be matched against the address book
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Path returns the normalized prefix of the node, e.g. "a/b/x.txt".
func (n *Node) Path() string {
	return n.key
}

// SourcePath returns the path the node stands for in the address book.
func (n *Node) SourcePath() string {
	return n.source
}

// Pattern returns the delete pattern for the node. Directories get a trailing
// separator so that their whole subtree is removed.
func (n *Node) Pattern() string {
	if n.IsFile {
		return n.source
	}
	return strings.TrimSuffix(n.source, string(filepath.Separator)) + string(filepath.Separator)
}

// IsDir probes whether an address book path names a directory.
type IsDir func(path string) bool

// TreeOptions controls how record paths are turned into tree prefixes.
type TreeOptions struct {
	// Base is stripped from absolute paths beneath it, so the tree is shown
	// relative to it. Usually the directory holding the address book.
	Base string
	// IsDir classifies records. Defaults to StatDir(Base).
	IsDir IsDir
}

// StatDir returns a probe that stats the path, resolving relative paths
// against base when set. Paths with a trailing separator are directories.
func StatDir(base string) IsDir {
	return func(p string) bool {
		if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
			return true
		}
		if base != "" && !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		info, err := os.Stat(p)
		return err == nil && info.IsDir()
	}
}

// Tree is the hierarchy reconstructed from the flat list of address paths.
type Tree struct {
	Root  *Node
	Label string

	nodes []*Node          // arena in insertion order
	index map[string]*Node // prefix -> node, lookup only
}

func newTree(label string) *Tree {
	return &Tree{
		Root:  &Node{Name: label},
		Label: label,
		index: make(map[string]*Node),
	}
}

// BuildTree indexes records into a tree in which every unique path prefix is
// exactly one node. Directories are inserted before files, each group in
// lexicographic order of the full path, so the layout does not depend on row
// order.
func BuildTree(records []Record, opts TreeOptions) *Tree {
	isDir := opts.IsDir
	if isDir == nil {
		isDir = StatDir(opts.Base)
	}

	var dirs, files []Record
	for _, rec := range records {
		if isDir(rec.Path) {
			dirs = append(dirs, rec)
		} else {
			files = append(files, rec)
		}
	}
	byPath := func(rs []Record) {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Path < rs[j].Path })
	}
	byPath(dirs)
	byPath(files)

	t := newTree(opts.Base)
	for _, rec := range dirs {
		t.insert(rec.Path, opts.Base, 0, false)
	}
	for _, rec := range files {
		t.insert(rec.Path, opts.Base, rec.SizeMB, true)
	}
	return t
}

// insert walks the prefixes of p, creating the nodes that do not exist yet.
func (t *Tree) insert(p, base string, size float64, isFile bool) {
	segs, rebased := splitPath(p, base)
	if len(segs) == 0 {
		return
	}

	dirSource := func(key string) string {
		source := filepath.FromSlash(key)
		if rebased {
			source = filepath.Join(base, source)
		}
		return source
	}

	parent := t.Root
	for i, seg := range segs {
		if parent.IsFile {
			// a row that is a prefix of another row is a directory
			parent.IsFile = false
			parent.SizeMB = 0
			parent.source = dirSource(parent.key)
		}
		key := path.Join(segs[:i+1]...)
		node, ok := t.index[key]
		if !ok {
			node = t.attach(parent, seg, key, dirSource(key))
		}
		parent = node
	}

	if isFile && len(parent.Children) == 0 {
		parent.IsFile = true
		parent.SizeMB = size
		parent.source = strings.TrimSpace(p)
	}
}

func (t *Tree) attach(parent *Node, name, key, source string) *Node {
	node := &Node{
		Name:   name,
		parent: parent,
		key:    key,
		source: source,
	}
	parent.Children = append(parent.Children, node)
	t.nodes = append(t.nodes, node)
	t.index[key] = node
	return node
}

// splitPath normalizes p into slash segments. Absolute paths beneath base are
// made relative to it, in which case rebased is true.
func splitPath(p, base string) (segs []string, rebased bool) {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil, false
	}
	clean := filepath.Clean(p)
	if base != "" && filepath.IsAbs(clean) {
		rel, err := filepath.Rel(base, clean)
		if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			clean = rel
			rebased = true
		}
	}

	slashed := filepath.ToSlash(clean)
	if strings.HasPrefix(slashed, "/") {
		segs = append(segs, "/")
	}
	for _, seg := range strings.Split(slashed, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segs = append(segs, seg)
	}
	return segs, rebased
}

// Lookup returns the node for a path, normalized the same way as on insert.
func (t *Tree) Lookup(p string) (*Node, bool) {
	segs, _ := splitPath(p, t.Label)
	if len(segs) == 0 {
		return nil, false
	}
	node, ok := t.index[path.Join(segs...)]
	return node, ok
}

// Len returns the number of nodes in the tree, excluding the root.
func (t *Tree) Len() int {
	return len(t.index)
}

// Remove detaches node and its subtree from the tree.
func (t *Tree) Remove(node *Node) {
	if node == nil || node.parent == nil {
		return
	}
	siblings := node.parent.Children
	for i, c := range siblings {
		if c == node {
			node.parent.Children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	var unindex func(n *Node)
	unindex = func(n *Node) {
		if t.index[n.key] == n {
			delete(t.index, n.key)
		}
		for _, c := range n.Children {
			unindex(c)
		}
	}
	unindex(node)
	node.parent = nil
}

// Walk visits every node below the root in pre-order.
func (t *Tree) Walk(fn func(n *Node, depth int) error) error {
	var walk func(n *Node, depth int) error
	walk = func(n *Node, depth int) error {
		for _, c := range n.Children {
			if err := fn(c, depth); err != nil {
				return err
			}
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t.Root, 0)
}

// TotalMB sums the sizes of all files in the tree.
func (t *Tree) TotalMB() float64 {
	var total float64
	t.Walk(func(n *Node, _ int) error {
		if n.IsFile {
			total += n.SizeMB
		}
		return nil
	})
	return total
}

// Filter returns a copy of the tree holding the nodes whose path fuzzy-matches
// query, plus all of their ancestors. An empty query returns t itself.
func (t *Tree) Filter(query string) *Tree {
	query = strings.TrimSpace(query)
	if query == "" {
		return t
	}

	var live []*Node
	var keys []string
	for _, n := range t.nodes {
		if t.index[n.key] == n {
			live = append(live, n)
			keys = append(keys, n.key)
		}
	}

	keep := make(map[*Node]bool)
	for _, m := range fuzzy.Find(query, keys) {
		for n := live[m.Index]; n != nil && n != t.Root; n = n.parent {
			keep[n] = true
		}
	}

	out := newTree(t.Label)
	var copyChildren func(src, dst *Node)
	copyChildren = func(src, dst *Node) {
		for _, c := range src.Children {
			if !keep[c] {
				continue
			}
			nc := out.attach(dst, c.Name, c.key, c.source)
			nc.IsFile = c.IsFile
			nc.SizeMB = c.SizeMB
			copyChildren(c, nc)
		}
	}
	copyChildren(t.Root, out.Root)
	return out
}

// Render writes the tree as a diagram. Directories get a trailing slash and
// files their size.
func (t *Tree) Render(w io.Writer) error {
	if t.Label != "" {
		if _, err := fmt.Fprintln(w, t.Label); err != nil {
			return err
		}
	}

	var writeNode func(n *Node, prefix string, isLast bool) error
	writeNode = func(n *Node, prefix string, isLast bool) error {
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		_, err := fmt.Fprintln(w, prefix+connector+DisplayName(n))
		if err != nil {
			return err
		}

		childPrefix := prefix + "│   "
		if isLast {
			childPrefix = prefix + "    "
		}
		for i, c := range n.Children {
			if err := writeNode(c, childPrefix, i == len(n.Children)-1); err != nil {
				return err
			}
		}
		return nil
	}

	for i, c := range t.Root.Children {
		if err := writeNode(c, "", i == len(t.Root.Children)-1); err != nil {
			return err
		}
	}
	return nil
}

// DisplayName is the label of a node in tree views.
func DisplayName(n *Node) string {
	if n.IsFile {
		return fmt.Sprintf("%s (%.2f MB)", n.Name, n.SizeMB)
	}
	if n.Name == "/" {
		return n.Name
	}
	return n.Name + "/"
}
