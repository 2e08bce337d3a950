package motion

import (
	"errors"
	"fmt"

	"github.com/phanxgames/gooey/sdf"
)

// MaxBlobs is the number of blob slots the shading stage can draw.
const MaxBlobs = sdf.MaxSpheres

// ErrLayout is wrapped by every Layout validation error.
var ErrLayout = errors.New("motion: invalid layout")

// RoleKind distinguishes the toggle blob from the menu-entry blobs.
type RoleKind uint8

const (
	RoleParent RoleKind = iota // toggle indicator, always slot 0
	RoleChild                  // one per menu entry
)

// Role identifies what a blob stands for. Index is 1-based for children and
// 0 for the parent.
type Role struct {
	Kind  RoleKind
	Index int
}

// Parent returns the role of the toggle blob.
func Parent() Role { return Role{Kind: RoleParent} }

// Child returns the role of the i-th menu entry blob (1-based).
func Child(i int) Role { return Role{Kind: RoleChild, Index: i} }

func (r Role) String() string {
	if r.Kind == RoleParent {
		return "parent"
	}
	return fmt.Sprintf("child(%d)", r.Index)
}

// Layout places the blobs. The closed configuration stacks every blob at
// (BaseX, BaseY); the open configuration drops child j (1-based) to
// BaseY - Spacing*(OpenLead + (j-1)*OpenStep).
type Layout struct {
	Count    int // number of blobs, parent included (1..MaxBlobs)
	BaseX    float64
	BaseY    float64
	Spacing  float64
	OpenLead float64 // offset of the first child, in spacings
	OpenStep float64 // offset between consecutive children, in spacings
	Stagger  float64 // onset delay per slot index, in seconds

	ParentOpenRadius   float64
	ParentClosedRadius float64
	ChildOpenRadius    float64
}

// DefaultLayout returns the four-slot layout of a three-entry menu.
func DefaultLayout() Layout {
	return Layout{
		Count:              MaxBlobs,
		BaseX:              0.95,
		BaseY:              2.96,
		Spacing:            0.62,
		OpenLead:           2.6,
		OpenStep:           1.3,
		Stagger:            0.2,
		ParentOpenRadius:   0.38,
		ParentClosedRadius: 0.28,
		ChildOpenRadius:    0.30,
	}
}

// LayoutForItems returns the default layout sized for n menu entries: one
// parent plus one child per entry, capped at MaxBlobs.
func LayoutForItems(n int) Layout {
	l := DefaultLayout()
	l.Count = min(max(n+1, 1), MaxBlobs)
	return l
}

// Validate reports the first problem with l.
func (l Layout) Validate() error {
	switch {
	case l.Count < 1 || l.Count > MaxBlobs:
		return fmt.Errorf("%w: count %d outside [1, %d]", ErrLayout, l.Count, MaxBlobs)
	case l.Spacing <= 0:
		return fmt.Errorf("%w: spacing %v must be positive", ErrLayout, l.Spacing)
	case l.Stagger < 0:
		return fmt.Errorf("%w: stagger %v is negative", ErrLayout, l.Stagger)
	case l.ParentOpenRadius < 0 || l.ParentClosedRadius < 0 || l.ChildOpenRadius < 0:
		return fmt.Errorf("%w: radii must be non-negative", ErrLayout)
	}
	return nil
}

// RoleOf returns the role of slot i.
func (l Layout) RoleOf(i int) Role {
	if i == 0 {
		return Parent()
	}
	return Child(i)
}

// ClosedY is the shared closed position.
func (l Layout) ClosedY() float64 { return l.BaseY }

// OpenY is the open position of slot i.
func (l Layout) OpenY(i int) float64 {
	if i == 0 {
		return l.BaseY
	}
	return l.BaseY - l.Spacing*(l.OpenLead+float64(i-1)*l.OpenStep)
}

// OpenRadius is the open radius of slot i.
func (l Layout) OpenRadius(i int) float64 {
	if i == 0 {
		return l.ParentOpenRadius
	}
	return l.ChildOpenRadius
}

// ClosedRadius is the closed radius of slot i. Children vanish when closed.
func (l Layout) ClosedRadius(i int) float64 {
	if i == 0 {
		return l.ParentClosedRadius
	}
	return 0
}

// Delay is the onset delay of slot i after a transition.
func (l Layout) Delay(i int) float64 { return float64(i) * l.Stagger }
