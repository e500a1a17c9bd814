package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"golang.org/x/net/html"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// tableRow adapts one tr element to the models.Row contract.
type tableRow struct {
	headerCells []string
	dataCells   []string
}

// HeaderCells returns the text of each th cell in document order.
func (r *tableRow) HeaderCells() []string { return r.headerCells }

// DataCells returns the text of each td cell in document order.
func (r *tableRow) DataCells() []string { return r.dataCells }

// ParseDocument builds a goquery document from raw page HTML.
func ParseDocument(pageHTML string) (*goquery.Document, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryProcessing, "HTML_PARSE_FAILED", "RowSource", "ParseDocument", false)
	}
	return document, nil
}

// DocumentRows collects every table row on the page, in document order. The
// source page keeps Mainboard and SME data in one loosely structured table,
// so rows are swept globally rather than per table.
func DocumentRows(document *goquery.Document) []models.Row {
	var rows []models.Row

	document.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := &tableRow{}
		tr.Find("th").Each(func(_ int, cell *goquery.Selection) {
			row.headerCells = append(row.headerCells, cellText(cell))
		})
		tr.Find("td").Each(func(_ int, cell *goquery.Selection) {
			row.dataCells = append(row.dataCells, cellText(cell))
		})
		rows = append(rows, row)
	})

	return rows
}

// cellText joins a cell's normalized text segments with newlines, so content
// stacked across markup (an IPO name above its bidding window) stays
// separable downstream.
func cellText(cell *goquery.Selection) string {
	var segments []string
	for _, node := range cell.Nodes {
		segments = appendTextSegments(segments, node)
	}
	return strings.Join(segments, "\n")
}

// appendTextSegments walks the node tree collecting non-empty text nodes in
// document order.
func appendTextSegments(segments []string, node *html.Node) []string {
	if node.Type == html.TextNode {
		if normalized := normalizeSegment(node.Data); normalized != "" {
			segments = append(segments, normalized)
		}
		return segments
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		segments = appendTextSegments(segments, child)
	}
	return segments
}

// normalizeSegment collapses whitespace runs inside one text node. Markup
// boundaries, not source formatting, decide where cell text splits.
func normalizeSegment(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
