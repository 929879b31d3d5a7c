// Package cvpdf renders the portal's fixed CV layout to PDF.
package cvpdf

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/probashi-portal/apiserver/types"
)

const (
	pageMargin   = 30.0
	bodyFontSize = 12.0
	headFontSize = 20.0
	lineHeight   = 14.0
	sectionGap   = 10.0
	entryGap     = 4.0
	fontFamily   = "Helvetica"
)

// Render produces the CV document: centered name header, contact line,
// then summary, work experience, education, skills and certification
// sections. The layout is fixed; only the data varies.
func Render(data types.CVData) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	// Header
	pdf.SetFont(fontFamily, "", headFontSize)
	pdf.CellFormat(contentWidth, headFontSize+4, data.Name, "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", bodyFontSize)
	contact := strings.Join([]string{data.Email, data.Phone, data.Address}, " | ")
	pdf.CellFormat(contentWidth, lineHeight, contact, "", 1, "C", false, 0, "")
	pdf.Ln(sectionGap)

	// Summary
	sectionTitle(pdf, contentWidth, "Professional Summary")
	pdf.MultiCell(contentWidth, lineHeight, data.Summary, "", "L", false)
	pdf.Ln(sectionGap)

	// Experience
	sectionTitle(pdf, contentWidth, "Work Experience")
	for _, exp := range data.Experiences {
		pdf.Ln(entryGap)
		titleRow(pdf, contentWidth, exp.Title+", "+exp.Company, exp.From+" - "+exp.To)
		if exp.Description != "" {
			pdf.MultiCell(contentWidth, lineHeight, exp.Description, "", "L", false)
		}
	}
	pdf.Ln(sectionGap)

	// Education
	sectionTitle(pdf, contentWidth, "Education")
	for _, edu := range data.Educations {
		pdf.Ln(entryGap)
		titleRow(pdf, contentWidth, edu.Degree+", "+edu.School, edu.From+" - "+edu.To)
	}
	pdf.Ln(sectionGap)

	// Skills
	sectionTitle(pdf, contentWidth, "Skills")
	pdf.MultiCell(contentWidth, lineHeight, strings.Join(data.Skills, ", "), "", "L", false)
	pdf.Ln(sectionGap)

	// Certifications
	sectionTitle(pdf, contentWidth, "Certifications & Projects")
	pdf.MultiCell(contentWidth, lineHeight, strings.Join(data.Certifications, ", "), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *fpdf.Fpdf, width float64, title string) {
	pdf.SetFont(fontFamily, "B", bodyFontSize)
	pdf.CellFormat(width, lineHeight, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", bodyFontSize)
}

func titleRow(pdf *fpdf.Fpdf, width float64, left, right string) {
	half := width / 2
	pdf.CellFormat(half, lineHeight, left, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, lineHeight, right, "", 1, "R", false, 0, "")
}
