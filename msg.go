package grille

import (
	nt "grille/entity"
)

// pageMsg contains a page of rows and the count in view
type pageMsg struct {
	gen    int
	offset int
	rows   []nt.RowData
	count  int
}

// settleMsg signals the quiet period after a resize has passed
type settleMsg struct {
	tag int
}

type change struct {
	kind  nt.ChangeType
	field string
}

// changeLog collects list state changes reported while a message is handled.
type changeLog struct {
	pending []change
}

func (cl *changeLog) add(kind nt.ChangeType, fieldName string) {
	cl.pending = append(cl.pending, change{kind: kind, field: fieldName})
}

func (cl *changeLog) drain() (changes []change) {
	changes, cl.pending = cl.pending, nil
	return
}
