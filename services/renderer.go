package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/shared"
)

const (
	reportSubject = "Daily IPO GMP Summary"

	blockedMessage = "Scraping blocked by the website (HTTP 403 Forbidden). They may be blocking bots / scripts."
	noDataMessage  = "No GMP table data could be parsed from the page."
)

// ReportRenderer turns a parsed report into a deliverable message body.
type ReportRenderer interface {
	Render(report *models.Report) (*models.RenderedReport, error)
}

// TextRenderer produces the plain text summary.
type TextRenderer struct{}

// NewTextRenderer creates the plain text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render builds the text summary: a title line, the source URL, then one
// block per section in parse order.
func (r *TextRenderer) Render(report *models.Report) (*models.RenderedReport, error) {
	return &models.RenderedReport{
		Subject: reportSubject,
		Text:    renderText(report),
	}, nil
}

// renderText is shared by both renderers; the HTML variant carries its
// output as the plain text alternative of the multipart message.
func renderText(report *models.Report) string {
	if report.Blocked {
		return blockedMessage
	}
	if report.IsEmpty() {
		return noDataMessage
	}

	lines := []string{"IPO GMP Summary from IPO Central", report.SourceURL, ""}

	for _, section := range report.Sections {
		lines = append(lines, section.Name+":")
		if len(section.Records) == 0 {
			lines = append(lines, "  (no rows)")
		}
		for _, record := range section.Records {
			lines = append(lines, fmt.Sprintf(
				"- %s %s: Price %s, GMP %s (%s%%), Subject to %s",
				record.Name, record.Window, record.Price, record.GMP, record.GMPPercent, record.SubjectTo,
			))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// HTMLRenderer renders one styled table per section, keeping the text
// summary as the multipart fallback.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates the HTML renderer with its parsed template.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("report").Parse(reportHTMLTemplate)),
	}
}

// Render builds both the HTML body and the plain text alternative.
func (r *HTMLRenderer) Render(report *models.Report) (*models.RenderedReport, error) {
	var htmlBuffer bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuffer, report); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryProcessing, "TEMPLATE_RENDER_FAILED", "HTMLRenderer", "Render", false)
	}

	return &models.RenderedReport{
		Subject: reportSubject,
		Text:    renderText(report),
		HTML:    htmlBuffer.String(),
	}, nil
}

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222222; margin: 0; padding: 16px;">
<h2 style="margin-bottom: 4px;">IPO GMP Summary from IPO Central</h2>
<p style="margin-top: 0;"><a href="{{.SourceURL}}">{{.SourceURL}}</a></p>
{{if .Blocked}}
<p>Scraping blocked by the website (HTTP 403 Forbidden). They may be blocking bots / scripts.</p>
{{else if .IsEmpty}}
<p>No GMP table data could be parsed from the page.</p>
{{else}}
{{range .Sections}}
<h3 style="margin-bottom: 4px;">{{.Name}}</h3>
{{if .Records}}
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse; margin-bottom: 16px;">
<tr style="background-color: #f2f2f2;">
<th align="left">Name</th>
<th align="left">Bidding Window</th>
<th align="left">Price</th>
<th align="left">GMP</th>
<th align="left">GMP %</th>
<th align="left">Subject To</th>
</tr>
{{range .Records}}
<tr>
<td>{{.Name}}</td>
<td>{{.Window}}</td>
<td>{{.Price}}</td>
<td>{{.GMP}}</td>
<td>{{.GMPPercent}}</td>
<td>{{.SubjectTo}}</td>
</tr>
{{end}}
</table>
{{else}}
<p style="color: #777777;">(no rows)</p>
{{end}}
{{end}}
{{end}}
</body>
</html>`
