package lint

import "github.com/yaklabco/vuelint/pkg/tplast"

// nodeCache holds node collections built by a single walk of the template
// tree, shared by every rule that runs on the same file.
//
// The returned slices are shared. Rules must copy them before sorting or
// filtering in place.
//
// A nodeCache belongs to one file's rule run and is not safe for concurrent use.
type nodeCache struct {
	built bool

	elements   []*tplast.Node
	attributes []*tplast.Attribute
	valued     []*tplast.Attribute
}

func (c *nodeCache) build(root *tplast.Node) {
	if c.built {
		return
	}
	c.built = true

	//nolint:errcheck,revive // the callback never fails
	tplast.WalkElements(root, func(n *tplast.Node) error {
		c.elements = append(c.elements, n)
		for _, attr := range n.Attrs {
			c.attributes = append(c.attributes, attr)
			if attr.HasValue() {
				c.valued = append(c.valued, attr)
			}
		}
		return nil
	})
}
