package services

import (
	"strings"

	"github.com/fenilmodi00/gmp-mailer/models"
)

// recordCellCount is the number of data cells a row needs to yield a record:
// name with bidding window, price, GMP, GMP percent and subject-to rate.
const recordCellCount = 5

// ParseStats describes what one pass over a row sequence consumed and
// produced. Dropped counts feed warning logs; they never abort a run.
type ParseStats struct {
	TotalRows         int `json:"total_rows"`
	HeaderRows        int `json:"header_rows"`
	DataRows          int `json:"data_rows"`
	Records           int `json:"records"`
	DroppedShortRows  int `json:"dropped_short_rows"`
	DroppedOrphanRows int `json:"dropped_orphan_rows"`
}

// ParseGMPRows walks table rows in order and groups data rows under the most
// recently seen header. Data rows arriving before any header, and data rows
// with fewer than five cells, are dropped. The result depends only on the
// input sequence; section order matches the order headers first appear.
func ParseGMPRows(rows []models.Row) ([]models.Section, ParseStats) {
	var sections []models.Section
	sectionIndex := make(map[string]int)
	currentSection := -1
	var stats ParseStats

	for _, row := range rows {
		stats.TotalRows++

		headerCells := row.HeaderCells()
		if len(headerCells) > 0 {
			stats.HeaderRows++

			headerText := strings.TrimSpace(headerCells[0])
			if headerText != "" {
				index, exists := sectionIndex[headerText]
				if !exists {
					index = len(sections)
					sections = append(sections, models.Section{Name: headerText})
					sectionIndex[headerText] = index
				}
				currentSection = index
			}

			// A header row never contributes a record, even when it also
			// carries data cells.
			continue
		}

		dataCells := row.DataCells()
		if len(dataCells) == 0 {
			continue
		}
		stats.DataRows++

		if currentSection < 0 {
			stats.DroppedOrphanRows++
			continue
		}

		if len(dataCells) < recordCellCount {
			stats.DroppedShortRows++
			continue
		}

		name, window := splitNameCell(dataCells[0])
		record := models.Record{
			Name:       name,
			Window:     window,
			Price:      fieldText(dataCells[1]),
			GMP:        fieldText(dataCells[2]),
			GMPPercent: fieldText(dataCells[3]),
			SubjectTo:  fieldText(dataCells[4]),
		}

		sections[currentSection].Records = append(sections[currentSection].Records, record)
		stats.Records++
	}

	return sections, stats
}

// splitNameCell separates an IPO name from the bidding window stacked under
// it, such as "Acme Corp" over "(1 - 5 Jan)". Cells without a second segment
// yield an empty window; segments past the second are ignored.
func splitNameCell(cell string) (name, window string) {
	parts := splitSegments(cell)
	if len(parts) > 0 {
		name = parts[0]
	}
	if len(parts) > 1 {
		window = parts[1]
	}
	return name, window
}

// fieldText flattens a cell to single-line trimmed text.
func fieldText(cell string) string {
	return strings.Join(splitSegments(cell), "")
}

// splitSegments breaks cell text on line breaks, trimming parts and dropping
// empty ones.
func splitSegments(cell string) []string {
	var segments []string
	for _, part := range strings.Split(cell, "\n") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}
