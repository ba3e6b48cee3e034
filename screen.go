package grille

// Mode indicates what keys and the body area are currently for
type Mode int

const (
	TableMode Mode = iota
	FilterMode
	ChooserMode
)
