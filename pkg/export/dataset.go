package export

import "fmt"

// Format is an output encoding for a Dataset.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatPDF
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Dataset is a titled table; every row has len(Columns) cells.
type Dataset struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// AddRow appends cells, padding or truncating to the column count.
func (d *Dataset) AddRow(cells ...string) {
	row := make([]string, len(d.Columns))
	copy(row, cells)
	d.Rows = append(d.Rows, row)
}

// Renderer encodes a Dataset.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
}

// RendererFor returns the renderer of f.
func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatCSV:
		return CSVRenderer{}, nil
	case FormatPDF:
		return PDFRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}
