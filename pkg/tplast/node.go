package tplast

// NodeKind classifies the type of a template node.
type NodeKind uint8

// Node kinds.
const (
	NodeDocument NodeKind = iota
	NodeElement
	NodeText
	NodeComment
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Node is a single node of the template tree.
type Node struct {
	Kind NodeKind

	// Name is the tag name as written, for elements only.
	Name string

	// Range covers the node's source, from the start tag's '<' to the end of
	// the end tag when there is one.
	Range SourceRange

	// Attrs holds the start-tag attributes in source order.
	Attrs []*Attribute

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot
}

// NewNode creates a detached node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// AppendChild attaches child as the last child of parent.
func AppendChild(parent, child *Node) {
	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the node's source bytes.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}
	return n.File.Text(n.Range)
}

// Attr returns the first attribute whose key is name, or nil.
func (n *Node) Attr(name string) *Attribute {
	for _, attr := range n.Attrs {
		if attr.KeyText() == name {
			return attr
		}
	}
	return nil
}

// Attribute is a start-tag attribute.
type Attribute struct {
	// Key is the range of the attribute name, e.g. ":title" or "v-bind:x".
	Key SourceRange

	// Value is the range of the value including its quotes, or nil when the
	// attribute is written without a value.
	Value *SourceRange

	// Node is the element carrying the attribute.
	Node *Node
}

// HasValue reports whether the attribute was written with a value.
func (a *Attribute) HasValue() bool {
	return a.Value != nil
}

// KeyText returns the attribute name as written.
func (a *Attribute) KeyText() string {
	if a.Node == nil || a.Node.File == nil {
		return ""
	}
	return string(a.Node.File.Text(a.Key))
}

// ValueText returns the raw value text including quotes, or "" when the
// attribute has no value.
func (a *Attribute) ValueText() string {
	if a.Value == nil || a.Node == nil || a.Node.File == nil {
		return ""
	}
	return string(a.Node.File.Text(*a.Value))
}

// SetFile sets the File back-reference on every node under root.
func SetFile(root *Node, file *FileSnapshot) {
	//nolint:errcheck,revive // the callback never fails
	Walk(root, func(n *Node) error {
		n.File = file
		return nil
	})
}
