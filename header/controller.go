// Package header drives pointer interaction with the column header: drag to
// reorder columns within their group, drag to resize, and click to sort.
//
// The controller only reads the column tree. What it wants changed comes
// back as an Action for the owner of the tree to apply.
package header

import (
	nt "grille/entity"
	"grille/field"
)

// Button is a pointer button.
type Button int

const (
	Primary Button = iota
	Secondary
	Auxiliary
	OtherButton
)

// Pointer is a pointer event in screen coordinates.
type Pointer struct {
	X, Y   int
	Button Button
}

// ActionKind says what a pointer event asks for.
type ActionKind int

const (
	NoAction ActionKind = iota
	ResizeAction
	MoveAction
	SortAction
)

// Action is a change requested by the header.
type Action struct {
	Kind      ActionKind
	Field     string
	Width     int
	Index     int
	Direction nt.SortDirection
}

// Controller tracks at most one drag session at a time.
type Controller struct {
	tree    field.View
	geom    Geometry
	session session
	settler Settler

	MinWidth int
}

// New creates a controller reading the given tree.
func New(tree field.View, geom Geometry) Controller {
	return Controller{
		tree:     tree,
		geom:     geom,
		MinWidth: MinWidth,
	}
}

// SetTree points the controller at a new tree and ends any drag.
func (ctl *Controller) SetTree(tree field.View) {
	ctl.Cancel()
	ctl.tree = tree
}

// SetGeometry updates where cells are on screen.
func (ctl *Controller) SetGeometry(geom Geometry) {
	ctl.geom = geom
}

// Geometry returns the current cell placement.
func (ctl *Controller) Geometry() Geometry {
	return ctl.geom
}

// Press starts a resize on a handle, requests a sort on a sort indicator, or
// starts a reorder drag on a cell. Only the primary button does anything.
// A press also ends any session whose release was never seen.
func (ctl *Controller) Press(ptr Pointer) (act Action) {
	ctl.Cancel()

	if ptr.Button != Primary || ctl.tree == nil {
		return
	}

	if placed, ok := ctl.geom.HandleAt(ptr.X, ptr.Y); ok {
		start := placed.Node.Width
		if start <= 0 {
			start = placed.W
		}
		ctl.session = resizeSession{
			field:      placed.Node.Name,
			startWidth: start,
			startX:     ptr.X,
		}
		return
	}

	placed, ok := ctl.geom.CellAt(ptr.X, ptr.Y)
	if !ok {
		return
	}

	if placed.Indicator(ptr.X, ptr.Y) {
		direction := nt.Asc
		if placed.Node.SortDirection == nt.Asc {
			direction = nt.Desc
		}
		return Action{Kind: SortAction, Field: placed.Node.Name, Direction: direction}
	}

	ctl.session = reorderSession{
		field: placed.Node.Name,
		group: placed.Group,
		row:   placed.Row,
	}
	return
}

// Motion tracks the pointer during a drag. While resizing each motion asks
// for the width under the pointer.
func (ctl *Controller) Motion(ptr Pointer) (act Action) {
	if ctl.session == nil {
		return
	}

	act, ctl.session = ctl.session.motion(ctl, ptr)
	return
}

// Release ends the drag. A reorder dropped on a sibling asks to move the
// dragged node to the sibling's index; anything else asks for nothing.
func (ctl *Controller) Release(ptr Pointer) (act Action) {
	if ctl.session == nil {
		return
	}
	defer ctl.Cancel()

	_, ctl.session = ctl.session.motion(ctl, ptr)
	return ctl.session.release(ctl)
}

// Cancel drops the current session, if any, and every marker with it.
func (ctl *Controller) Cancel() {
	ctl.session = nil
}

// Dragging reports whether a reorder drag is under way and on which row.
func (ctl *Controller) Dragging() (row int, ok bool) {
	sess, ok := ctl.session.(reorderSession)
	if !ok {
		return -1, false
	}
	return sess.row, true
}

// Dragged returns the node being reordered.
func (ctl *Controller) Dragged() string {
	sess, _ := ctl.session.(reorderSession)
	return sess.field
}

// Hover returns the sibling a reorder drag would drop on.
func (ctl *Controller) Hover() string {
	sess, _ := ctl.session.(reorderSession)
	return sess.hover
}

// Resizing returns the node being resized.
func (ctl *Controller) Resizing() (name string, ok bool) {
	sess, ok := ctl.session.(resizeSession)
	return sess.field, ok
}

// unexported

type session interface {
	motion(ctl *Controller, ptr Pointer) (Action, session)
	release(ctl *Controller) Action
}

type resizeSession struct {
	field      string
	startWidth int
	startX     int
}

func (sess resizeSession) motion(ctl *Controller, ptr Pointer) (Action, session) {
	width := max(sess.startWidth+ptr.X-sess.startX, ctl.MinWidth)
	return Action{Kind: ResizeAction, Field: sess.field, Width: width}, sess
}

func (sess resizeSession) release(ctl *Controller) Action {
	return Action{}
}

type reorderSession struct {
	field string
	group string
	row   int
	hover string
}

func (sess reorderSession) motion(ctl *Controller, ptr Pointer) (Action, session) {
	sess.hover = ""

	over, ok := ctl.geom.CellAt(ptr.X, ptr.Y)
	if ok && over.Group == sess.group && over.Node.Name != sess.field {
		sess.hover = over.Node.Name
	}
	return Action{}, sess
}

func (sess reorderSession) release(ctl *Controller) Action {
	if sess.hover == "" {
		return Action{}
	}

	parent, ok := ctl.tree.Parent(sess.hover)
	if !ok {
		return Action{}
	}
	index := ctl.tree.Index(parent.Name, sess.hover)
	if index < 0 {
		return Action{}
	}
	return Action{Kind: MoveAction, Field: sess.field, Index: index}
}
