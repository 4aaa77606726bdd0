package verification

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin  = 15.0
	dateLayout = "2006-01-02"
)

var (
	colorPrimary   = [3]int{212, 175, 140}
	colorDark      = [3]int{40, 35, 30}
	colorMuted     = [3]int{100, 100, 100}
	colorLightGray = [3]int{245, 242, 235}
)

// PDFFilename es el nombre sugerido para la descarga.
func PDFFilename(certificateNumber string) string {
	return "medical-report-" + certificateNumber + ".pdf"
}

// RenderPDF escribe la ficha en A4. generatedAt va en el encabezado y en los metadatos.
func RenderPDF(w io.Writer, rec Record, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Medical report "+rec.Animal.CertificateNumber, true)
	pdf.SetCreator(clinicName, true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 7)
		setText(pdf, colorMuted)
		pdf.CellFormat(0, 5, fmt.Sprintf("%s - %s - page %d/{nb}", clinicName, rec.Animal.CertificateNumber, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Encabezado
	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.Rect(0, 0, pageW, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pdfMargin, 12, clinicName)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(pdfMargin, 19, "Medical Report")
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(pdfMargin, 24, "Professional veterinary care")

	pdf.SetXY(pageW-pdfMargin-80, 8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(80, 5, generatedAt.Format(dateLayout), "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(80, 5, "Cert: "+rec.Animal.CertificateNumber, "", 0, "R", false, 0, "")

	pdf.SetY(36)

	a := rec.Animal
	section(pdf, contentW, "Animal Information")
	pairRow(pdf, tr, "Name", a.Name, "Species / Breed", label(speciesLabels, string(a.Species))+" - "+a.Breed)
	pairRow(pdf, tr, "Age", fmt.Sprintf("%d years", rec.Age), "Weight", fmt.Sprintf("%g kg", a.Weight))
	pairRow(pdf, tr, "Date of birth", a.DateOfBirth.Format(dateLayout), "Registered", a.RegistrationDate.Format(dateLayout))

	section(pdf, contentW, "Owner Information")
	pairRow(pdf, tr, "Owner", a.OwnerName, "Phone", a.OwnerPhone)
	pairRow(pdf, tr, "Email", a.OwnerEmail, "", "")

	section(pdf, contentW, fmt.Sprintf("Medical Reports (%d)", len(rec.Reports)))
	if len(rec.Reports) == 0 {
		emptyLine(pdf, "No medical reports on file.")
	}
	for _, r := range rec.Reports {
		pdf.SetFillColor(colorLightGray[0], colorLightGray[1], colorLightGray[2])
		pdf.SetFont("Helvetica", "B", 9)
		setText(pdf, colorDark)
		pdf.CellFormat(contentW, 6, tr(label(reportTypeLabels, string(r.ReportType))+"  -  "+r.CreatedAt.Format(dateLayout)), "", 1, "L", true, 0, "")
		textBlock(pdf, tr, contentW, "Diagnosis", r.Diagnosis)
		textBlock(pdf, tr, contentW, "Symptoms", r.Symptoms)
		textBlock(pdf, tr, contentW, "Treatment", r.Treatment)
		textBlock(pdf, tr, contentW, "Prescriptions", r.Prescriptions)
		textBlock(pdf, tr, contentW, "Veterinarian", r.Veterinarian)
		if r.FollowUpDate != nil {
			textBlock(pdf, tr, contentW, "Follow-up", r.FollowUpDate.Format(dateLayout))
		}
		if r.Price != nil {
			textBlock(pdf, tr, contentW, "Price", money(*r.Price))
		}
		textBlock(pdf, tr, contentW, "Notes", r.Notes)
		pdf.Ln(2)
	}

	section(pdf, contentW, fmt.Sprintf("Treatments (%d)", len(rec.Treatments)))
	if len(rec.Treatments) == 0 {
		emptyLine(pdf, "No treatments on file.")
	} else {
		table(pdf, tr, []float64{25, 30, 70, 35, 20},
			[]string{"Date", "Type", "Description", "Veterinarian", "Cost"},
			func(row func(cells ...string)) {
				for _, t := range rec.Treatments {
					row(t.Date.Format(dateLayout), label(treatmentLabels, string(t.Type)), t.Description, t.Veterinarian, money(t.Cost))
				}
			})
	}

	section(pdf, contentW, fmt.Sprintf("Vaccines (%d)", len(rec.Vaccines)))
	if len(rec.Vaccines) == 0 {
		emptyLine(pdf, "No vaccines on file.")
	} else {
		table(pdf, tr, []float64{55, 28, 28, 49, 20},
			[]string{"Vaccine", "Administered", "Next due", "Veterinarian", "Cost"},
			func(row func(cells ...string)) {
				for _, v := range rec.Vaccines {
					row(v.Name, v.DateAdministered.Format(dateLayout), v.NextDueDate.Format(dateLayout), v.Veterinarian, money(v.Cost))
				}
			})
	}

	section(pdf, contentW, "Cost Summary")
	costLine(pdf, contentW, "Treatments", rec.Costs.Treatments, false)
	costLine(pdf, contentW, "Vaccines", rec.Costs.Vaccines, false)
	costLine(pdf, contentW, "Medical reports", rec.Costs.Reports, false)
	costLine(pdf, contentW, "Total", rec.Costs.Total, true)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func setText(pdf *fpdf.Fpdf, c [3]int) {
	pdf.SetTextColor(c[0], c[1], c[2])
}

func section(pdf *fpdf.Fpdf, width float64, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, colorPrimary)
	pdf.CellFormat(width, 6, title, "", 1, "L", false, 0, "")
	y := pdf.GetY()
	pdf.SetDrawColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.SetLineWidth(0.7)
	pdf.Line(pdfMargin, y, pdfMargin+width, y)
	pdf.SetLineWidth(0.2)
	pdf.Ln(2)
}

func pairRow(pdf *fpdf.Fpdf, tr func(string) string, l1, v1, l2, v2 string) {
	pdf.SetFont("Helvetica", "B", 8)
	setText(pdf, colorMuted)
	pdf.CellFormat(30, 5, l1, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, colorDark)
	pdf.CellFormat(60, 5, tr(v1), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	setText(pdf, colorMuted)
	pdf.CellFormat(30, 5, l2, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, colorDark)
	pdf.CellFormat(0, 5, tr(v2), "", 1, "L", false, 0, "")
}

func textBlock(pdf *fpdf.Fpdf, tr func(string) string, width float64, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 8)
	setText(pdf, colorMuted)
	pdf.CellFormat(30, 5, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, colorDark)
	pdf.MultiCell(width-30, 5, tr(body), "", "L", false)
}

func table(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, header []string, rows func(row func(cells ...string))) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(colorLightGray[0], colorLightGray[1], colorLightGray[2])
	setText(pdf, colorDark)
	for i, h := range header {
		align := "L"
		if i == len(header)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 6, h, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	rows(func(cells ...string) {
		for i, c := range cells {
			align := "L"
			if i == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 5, truncate(tr(c), widths[i]), "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	})
}

// truncate recorta a lo que entra aprox. en el ancho de la celda (Helvetica 8pt).
func truncate(s string, width float64) string {
	limit := int(width / 1.6)
	if len(s) <= limit || limit < 4 {
		return s
	}
	return s[:limit-3] + "..."
}

func emptyLine(pdf *fpdf.Fpdf, msg string) {
	pdf.SetFont("Helvetica", "I", 8)
	setText(pdf, colorMuted)
	pdf.CellFormat(0, 5, msg, "", 1, "L", false, 0, "")
}

func costLine(pdf *fpdf.Fpdf, width float64, name string, amount float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	setText(pdf, colorDark)
	pdf.CellFormat(width-40, 6, name, "", 0, "L", bold, 0, "")
	pdf.CellFormat(40, 6, money(amount), "", 1, "R", bold, 0, "")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
