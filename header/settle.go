package header

import (
	"time"

	nt "grille/entity"
)

// SettleDelay is the quiet period after the last width change before
// rendered widths are measured and reported in bulk.
const SettleDelay = 200 * time.Millisecond

// Settler coalesces a burst of width changes into one trailing pass.
// Each change takes a new tag; only the latest tag is due, and only once.
type Settler struct {
	tag   int
	fired int
}

// Touch records a change and returns the tag to check back with after the
// quiet period.
func (st *Settler) Touch() int {
	st.tag++
	return st.tag
}

// Due reports whether tag is the latest change and has not yet fired,
// marking it fired.
func (st *Settler) Due(tag int) bool {
	if tag != st.tag || tag == st.fired {
		return false
	}
	st.fired = tag
	return true
}

// Touch records a width change for the settle pass.
func (ctl *Controller) Touch() int {
	return ctl.settler.Touch()
}

// Settle measures every rendered leaf column when tag is due.
func (ctl *Controller) Settle(tag int) (updates []nt.WidthUpdate, ok bool) {
	if !ctl.settler.Due(tag) {
		return
	}
	return ctl.Measured(), true
}

// Measured returns the rendered width of every leaf cell in header order.
func (ctl *Controller) Measured() (updates []nt.WidthUpdate) {
	updates = []nt.WidthUpdate{}
	for _, placed := range ctl.geom.Cells {
		if placed.Node.IsLeaf() {
			updates = append(updates, nt.WidthUpdate{Field: placed.Node.Name, Width: placed.W})
		}
	}
	return
}
