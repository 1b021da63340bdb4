package document

import "strings"

// Element tags used by ConEmu settings files.
const (
	TagKey   = "key"
	TagValue = "value"
)

// Attribute names used by ConEmu settings files.
const (
	AttrName     = "name"
	AttrModified = "modified"
	AttrBuild    = "build"
	AttrType     = "type"
	AttrData     = "data"
)

// NodeKind identifies what a Node holds.
type NodeKind int

const (
	// ElementNode is an XML element.
	ElementNode NodeKind = iota
	// CommentNode is an XML comment; only Text is meaningful.
	CommentNode
)

// Attr is a single attribute. Name is the qualified name as written in the
// source (prefix:local).
type Attr struct {
	Name  string
	Value string
}

// Node is an element or comment in the document tree.
type Node struct {
	Kind     NodeKind
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string // Non-whitespace character data, or the comment body
}

// NewKey creates a key element with the standard name/modified/build attributes.
func NewKey(name, modified, build string) *Node {
	return &Node{
		Kind: ElementNode,
		Tag:  TagKey,
		Attrs: []Attr{
			{Name: AttrName, Value: name},
			{Name: AttrModified, Value: modified},
			{Name: AttrBuild, Value: build},
		},
	}
}

// NewValue creates a value element.
func NewValue(name, typ, data string) *Node {
	return &Node{
		Kind: ElementNode,
		Tag:  TagValue,
		Attrs: []Attr{
			{Name: AttrName, Value: name},
			{Name: AttrType, Value: typ},
			{Name: AttrData, Value: data},
		},
	}
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOrEmpty returns the value of the named attribute, or "" if absent.
func (n *Node) AttrOrEmpty(name string) string {
	v, _ := n.Attr(name)
	return v
}

// SetAttr replaces the named attribute in place, keeping its position.
// A missing attribute is appended.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Name returns the node's name attribute.
func (n *Node) Name() string {
	return n.AttrOrEmpty(AttrName)
}

// IsKey reports whether n is a key (section) element.
func (n *Node) IsKey() bool {
	return n.Kind == ElementNode && n.Tag == TagKey
}

// IsValue reports whether n is a value element.
func (n *Node) IsValue() bool {
	return n.Kind == ElementNode && n.Tag == TagValue
}

// Append adds children to the end of n.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Prepend inserts a child before all existing children.
func (n *Node) Prepend(child *Node) {
	n.Children = append([]*Node{child}, n.Children...)
}

// ChildKey returns the first direct key child with the given name.
func (n *Node) ChildKey(name string) *Node {
	for _, c := range n.Children {
		if c.IsKey() && c.Name() == name {
			return c
		}
	}
	return nil
}

// ChildValue returns the first direct value child with the given name.
func (n *Node) ChildValue(name string) *Node {
	for _, c := range n.Children {
		if c.IsValue() && c.Name() == name {
			return c
		}
	}
	return nil
}

// Keys returns the direct key children of n.
func (n *Node) Keys() []*Node {
	var keys []*Node
	for _, c := range n.Children {
		if c.IsKey() {
			keys = append(keys, c)
		}
	}
	return keys
}

// Walk visits n and all element descendants in document order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n.Kind != ElementNode {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first element (n included) matching pred, in document order.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// Descendants returns every element below n (n excluded) matching pred.
func (n *Node) Descendants(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			if pred(d) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// NameValues returns the data of every descendant element whose name
// attribute is "Name". Elements without a data attribute are ignored.
func (n *Node) NameValues() []string {
	var names []string
	for _, d := range n.Descendants(func(d *Node) bool { return d.Name() == ThemeNameValue }) {
		if data, ok := d.Attr(AttrData); ok {
			names = append(names, data)
		}
	}
	return names
}

// ThemeName is the duplicate-detection key of a palette: its non-empty Name
// values joined with commas. Candidates and installed entries both use it.
func (n *Node) ThemeName() string {
	var parts []string
	for _, v := range n.NameValues() {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ",")
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{
		Kind: n.Kind,
		Tag:  n.Tag,
		Text: n.Text,
	}
	if n.Attrs != nil {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}
