package message

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// GetPageMsg signals to load a page of rows
type GetPageMsg struct {
	Offset int
	Size   int
}

// WidthsSetMsg signals that every column now has an explicit width
type WidthsSetMsg struct{}
