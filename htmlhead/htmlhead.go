// Package htmlhead renders header rows as an html table head.
package htmlhead

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"
	"github.com/pkg/errors"

	"grille/layout"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer writes <thead> markup.
type Renderer struct {
	thead *template.Template
}

type headCell struct {
	Name    string
	Group   string
	Label   string
	Sort    string
	RowSpan int
	ColSpan int
}

// New parses the embedded template.
func New() (rdr *Renderer, err error) {

	trustedFS := template.TrustedFSFromEmbed(templateFS)
	thead, err := template.New("thead.html").ParseFS(trustedFS, "templates/thead.html")
	if err != nil {
		err = errors.Wrapf(err, "failed to parse thead template")
		return
	}

	rdr = &Renderer{thead: thead}
	return
}

// Render writes one <tr> per header row and one <th> per cell.
func (rdr *Renderer) Render(w io.Writer, rows [][]layout.Cell) (err error) {

	view := make([][]headCell, len(rows))
	for i, row := range rows {
		view[i] = make([]headCell, len(row))
		for j, cell := range row {
			view[i][j] = headCell{
				Name:    cell.Node.Name,
				Group:   cell.Group,
				Label:   cell.Node.Label(),
				Sort:    string(cell.Node.SortDirection),
				RowSpan: cell.RowSpan,
				ColSpan: cell.ColSpan,
			}
		}
	}

	err = rdr.thead.Execute(w, view)
	err = errors.Wrapf(err, "failed to render thead")
	return
}
