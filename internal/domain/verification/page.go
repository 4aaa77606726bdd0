package verification

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/vaccines"
)

//go:embed templates/verify.html
var templatesFS embed.FS

type pageData struct {
	Clinic string
	Query  string
	Error  string
	Record *Record
}

func newPageTemplate(now func() time.Time) *template.Template {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format(dateLayout)
		},
		"money":          money,
		"speciesLabel":   func(s animals.Species) string { return label(speciesLabels, string(s)) },
		"treatmentLabel": func(t treatments.Type) string { return label(treatmentLabels, string(t)) },
		"reportLabel":    func(t medreports.ReportType) string { return label(reportTypeLabels, string(t)) },
		"due":            func(v vaccines.Vaccine) bool { return v.IsDue(now()) },
	}
	return template.Must(template.New("verify.html").Funcs(funcs).ParseFS(templatesFS, "templates/verify.html"))
}

func renderPage(tmpl *template.Template, w io.Writer, data pageData) error {
	data.Clinic = clinicName
	return tmpl.Execute(w, data)
}
