package services

import (
	"testing"
)

func TestDocumentRowsSplitsStackedCellText(t *testing.T) {
	pageHTML := `<html><body><table>
<tr><th>Mainboard IPO</th></tr>
<tr><td>Acme Corp<br>(1 - 5 Jan)</td><td>₹100</td><td>₹20</td><td>20%</td><td>Retail</td></tr>
</table></body></html>`

	document, err := ParseDocument(pageHTML)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	rows := DocumentRows(document)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	headerCells := rows[0].HeaderCells()
	if len(headerCells) != 1 || headerCells[0] != "Mainboard IPO" {
		t.Errorf("header cells = %q, want [%q]", headerCells, "Mainboard IPO")
	}

	dataCells := rows[1].DataCells()
	if len(dataCells) != 5 {
		t.Fatalf("expected 5 data cells, got %d", len(dataCells))
	}
	if dataCells[0] != "Acme Corp\n(1 - 5 Jan)" {
		t.Errorf("name cell = %q, want %q", dataCells[0], "Acme Corp\n(1 - 5 Jan)")
	}
	if dataCells[1] != "₹100" {
		t.Errorf("price cell = %q, want %q", dataCells[1], "₹100")
	}
}

func TestDocumentRowsJoinsNestedMarkupSegments(t *testing.T) {
	pageHTML := `<table><tr>
<td><a href="#">Acme Corp</a> <span>(1 - 5 Jan)</span></td>
<td><b>₹100</b></td>
</tr></table>`

	document, err := ParseDocument(pageHTML)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	rows := DocumentRows(document)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	dataCells := rows[0].DataCells()
	if dataCells[0] != "Acme Corp\n(1 - 5 Jan)" {
		t.Errorf("name cell = %q, want %q", dataCells[0], "Acme Corp\n(1 - 5 Jan)")
	}
	if dataCells[1] != "₹100" {
		t.Errorf("price cell = %q, want %q", dataCells[1], "₹100")
	}
}

func TestDocumentRowsNormalizesSourceFormatting(t *testing.T) {
	pageHTML := "<table><tr><td>\n   Acme\n   Corp\n   <br>\n   (1 - 5 Jan)\n</td></tr></table>"

	document, err := ParseDocument(pageHTML)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	rows := DocumentRows(document)
	dataCells := rows[0].DataCells()

	// Line breaks inside one text node come from source formatting, not
	// markup, so they collapse to spaces.
	if dataCells[0] != "Acme Corp\n(1 - 5 Jan)" {
		t.Errorf("name cell = %q, want %q", dataCells[0], "Acme Corp\n(1 - 5 Jan)")
	}
}

func TestDocumentRowsSweepsAllTablesInOrder(t *testing.T) {
	pageHTML := `<html><body>
<table><tr><th>Mainboard IPO</th></tr></table>
<p>unrelated content</p>
<table><tr><th>SME IPO</th></tr></table>
</body></html>`

	document, err := ParseDocument(pageHTML)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	rows := DocumentRows(document)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows across tables, got %d", len(rows))
	}
	if rows[0].HeaderCells()[0] != "Mainboard IPO" || rows[1].HeaderCells()[0] != "SME IPO" {
		t.Errorf("rows out of document order: %q, %q", rows[0].HeaderCells()[0], rows[1].HeaderCells()[0])
	}
}

func TestDocumentRowsEmptyRowHasNoCells(t *testing.T) {
	pageHTML := `<table><tr></tr><tr><td>value</td></tr></table>`

	document, err := ParseDocument(pageHTML)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	rows := DocumentRows(document)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0].HeaderCells()) != 0 || len(rows[0].DataCells()) != 0 {
		t.Errorf("empty row reported cells: headers=%q data=%q", rows[0].HeaderCells(), rows[0].DataCells())
	}
}

func TestDocumentRowsNoTables(t *testing.T) {
	document, err := ParseDocument(`<html><body><p>nothing here</p></body></html>`)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	if rows := DocumentRows(document); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestDocumentRowsEndToEndWithParser(t *testing.T) {
	pageHTML := `<html><body><table>
<tr><th>Mainboard IPO</th><th>Price</th><th>GMP</th><th>GMP %</th><th>Sub2 Rate</th></tr>
<tr><td>Acme Corp<br>(1 - 5 Jan)</td><td>₹100</td><td>₹20</td><td>20%</td><td>Retail</td></tr>
<tr><th>SME IPO</th><th>Price</th><th>GMP</th><th>GMP %</th><th>Sub2 Rate</th></tr>
<tr><td>Beta Ltd<br>(3 - 7 Jan)</td><td>₹50</td><td>₹5</td><td>10%</td><td>Small HNI</td></tr>
</table></body></html>`

	document, err := ParseDocument(pageHTML)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	sections, stats := ParseGMPRows(DocumentRows(document))

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Name != "Mainboard IPO" || sections[1].Name != "SME IPO" {
		t.Errorf("sections = %q, %q", sections[0].Name, sections[1].Name)
	}
	if stats.Records != 2 {
		t.Errorf("stats records = %d, want 2", stats.Records)
	}

	record := sections[1].Records[0]
	if record.Name != "Beta Ltd" || record.Window != "(3 - 7 Jan)" || record.SubjectTo != "Small HNI" {
		t.Errorf("unexpected SME record: %+v", record)
	}
}
