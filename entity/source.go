package entity

// Source serves the rows of a list for the current filter and sorts.
type Source interface {
	SetView(filter Filter, sorts []Sort) error
	Count() (int, error)
	Page(offset, size int) ([]RowData, error)
}
