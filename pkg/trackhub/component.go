package trackhub

import (
	"slices"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// Kind tags the concrete type of a [Component]. Ancestor lookups match on
// Kind rather than on Go types.
type Kind int

const (
	KindHub Kind = iota
	KindGenomesFile
	KindGenome
	KindTrackDbRoot
	KindTrackDb
	KindCompositeTrack
	KindViewTrack
	KindTrack
)

var kindNames = [...]string{
	KindHub:            "hub",
	KindGenomesFile:    "genomes file",
	KindGenome:         "genome",
	KindTrackDbRoot:    "trackDb root",
	KindTrackDb:        "trackDb",
	KindCompositeTrack: "composite track",
	KindViewTrack:      "view track",
	KindTrack:          "track",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Component is a node of the hub tree.
type Component interface {
	// Kind reports the node type.
	Kind() Kind
	// ID is the node's name as it appears in the rendered output.
	ID() string
	// Parent returns the owning node, or nil when the node is unattached.
	Parent() Component
	// Children returns a copy of the ordered child list.
	Children() []Component
	// Validate checks the node itself, not its subtree.
	Validate() error

	base() *node
}

// node holds the tree links shared by every component. parent is a
// non-owning back reference used only for upward lookups.
type node struct {
	self     Component
	parent   Component
	children []Component
}

func (n *node) Parent() Component { return n.parent }

func (n *node) Children() []Component { return slices.Clone(n.children) }

func (n *node) base() *node { return n }

// addChild attaches child below n. A node may be attached exactly once;
// attaching it again, to the same or another parent, is a structure error.
func (n *node) addChild(child Component) error {
	if child == nil {
		return herrors.Structure("cannot add nil %s child", n.self.Kind())
	}
	c := child.base()
	if c == n {
		return herrors.Structure("cannot add %s %q to itself", child.Kind(), child.ID())
	}
	if c.parent != nil {
		return herrors.Structure("%s %q is already attached to %s %q",
			child.Kind(), child.ID(), c.parent.Kind(), c.parent.ID())
	}
	for a := n.self; a != nil; a = a.Parent() {
		if a == child {
			return herrors.Structure("adding %s %q would create a cycle", child.Kind(), child.ID())
		}
	}
	c.parent = n.self
	n.children = append(n.children, child)
	return nil
}

func (n *node) removeChild(child Component) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.base().parent = nil
	return true
}

// forgetter is implemented by containers that keep a typed child list next
// to the generic one, so Detach can keep both in sync.
type forgetter interface {
	forget(child Component) error
}

// Detach removes c and its whole subtree from c's parent. The detached
// subtree keeps its internal links and can be attached elsewhere.
func Detach(c Component) error {
	p := c.Parent()
	if p == nil {
		return herrors.Structure("%s %q is not attached", c.Kind(), c.ID())
	}
	if f, ok := p.(forgetter); ok {
		if err := f.forget(c); err != nil {
			return err
		}
	}
	p.base().removeChild(c)
	return nil
}

// Root returns the nearest ancestor of c whose kind matches, together with
// its level: -1 for the parent, -2 for the grandparent and so on. ok is
// false when no such ancestor exists.
func Root(c Component, kind Kind) (ancestor Component, level int, ok bool) {
	for p := c.Parent(); p != nil; p = p.Parent() {
		level--
		if p.Kind() == kind {
			return p, level, true
		}
	}
	return nil, 0, false
}

// ancestorAt resolves the ancestor of the given kind and checks that it sits
// exactly at want. A missing ancestor is a path-resolution error, a
// misplaced one a structure error.
func ancestorAt[T Component](c Component, kind Kind, want int) (T, error) {
	var zero T
	a, level, ok := Root(c, kind)
	if !ok {
		return zero, herrors.Unresolved("%s %q has no %s ancestor", c.Kind(), c.ID(), kind)
	}
	if level != want {
		return zero, herrors.Structure("%s of %s %q is at level %d, not %d", kind, c.Kind(), c.ID(), level, want)
	}
	t, ok := a.(T)
	if !ok {
		return zero, herrors.New(herrors.ErrCodeInternal, "%s ancestor has unexpected type %T", kind, a)
	}
	return t, nil
}

// validateName checks a node name and reports a failure as a validation
// error of the node, keeping the name error as its cause.
func validateName(kind Kind, name string) error {
	if err := herrors.ValidateName(kind.String(), name); err != nil {
		return herrors.Wrap(herrors.ErrCodeValidation, err, "%s %q", kind, name)
	}
	return nil
}

// Walk visits c and its descendants depth-first in insertion order. depth is
// 0 for c. Returning an error from fn stops the walk.
func Walk(c Component, fn func(c Component, depth int) error) error {
	return walk(c, 0, fn)
}

func walk(c Component, depth int, fn func(Component, int) error) error {
	if err := fn(c, depth); err != nil {
		return err
	}
	for _, child := range c.base().children {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTree validates c and every descendant top-down and returns the
// first failure together with the number of nodes visited.
func ValidateTree(c Component) (int, error) {
	visited := 0
	err := Walk(c, func(n Component, _ int) error {
		visited++
		return n.Validate()
	})
	return visited, err
}
