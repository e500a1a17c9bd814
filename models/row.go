package models

// Row is a single table row from the scraped page, seen only through its
// cell text. A row with header cells opens a section; a row with data cells
// carries one IPO entry; a row with neither is skipped.
type Row interface {
	// HeaderCells returns the text of each header cell in document order.
	HeaderCells() []string
	// DataCells returns the text of each data cell in document order.
	DataCells() []string
}
