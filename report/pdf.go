package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/verify"
)

// PDF renders a verification result as a paginated A4 PDF at path.
func PDF(result *verify.Result, path string) error {
	rep := result.Report

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)

	title := "Profile Verification Report"
	if result.UserID != "" {
		title += ": " + result.UserID
	}
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(40, 40, 40)
		pdf.CellFormat(0, 10, sanitizeText(title), "", 0, "C", false, 0, "")
		pdf.Ln(12)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s - Page %d",
			result.GeneratedAt.Format("2006-01-02 15:04:05"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Headline trust verdict.
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	cell(pdf, 0, 8, fmt.Sprintf("Trust Level: %s (%d/100)", TrustLevel(rep.TrustScore.Overall), rep.TrustScore.Overall))
	pdf.Ln(4)

	addTrustTable(pdf, rep.TrustScore)
	pdf.SetFont("Arial", "", 10)
	multiCell(pdf, 0, 6, fmt.Sprintf("Cross-platform consistency: %d/100 (%s)",
		rep.ConsistencyScore, Assessment(rep.ConsistencyScore)))
	addProfileTable(pdf, result.Profiles)
	addSection(pdf, "Analysis Summary",
		fmt.Sprintf("Same-person confidence: %d%%\n\n%s", rep.SamePersonConfidence, rep.Summary))
	addDiscrepancies(pdf, rep.Discrepancies)
	addItemList(pdf, "Red Flags", rep.RedFlags)
	addItemList(pdf, "Strengths", rep.Strengths)
	addItemList(pdf, "Citations", rep.Citations)
	addInterpretation(pdf)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save PDF: %w", err)
	}
	return nil
}

func sectionHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(40, 40, 40)
	cell(pdf, 0, 8, text)
	pdf.SetTextColor(0, 0, 0)
}

func addTrustTable(pdf *gofpdf.Fpdf, ts verify.TrustScore) {
	sectionHeading(pdf, "Trust Score")

	rows := []struct {
		component string
		score     int
	}{
		{"Overall", ts.Overall},
		{"Reputation", ts.Reputation},
		{"Consistency", ts.Consistency},
		{"Content Quality", ts.ContentQuality},
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 7, "Component", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Score", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Assessment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 7, row.component, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.score), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, Assessment(row.score), "1", 1, "L", false, 0, "")
	}
}

func addProfileTable(pdf *gofpdf.Fpdf, profiles []*profile.Profile) {
	sectionHeading(pdf, "Profile Summary")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(30, 7, "Platform", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, "Username", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 7, "Followers", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Verified", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range profiles {
		name := "-"
		if p.Name != nil {
			name = *p.Name
		}
		followers := "-"
		if p.Followers != nil {
			followers = fmt.Sprintf("%d", *p.Followers)
		}
		verified := "unknown"
		if p.Verified != nil {
			if *p.Verified {
				verified = "yes"
			} else {
				verified = "no"
			}
		}
		pdf.CellFormat(30, 7, p.Platform, "1", 0, "L", false, 0, "")
		cellBordered(pdf, 45, 7, p.Username)
		cellBordered(pdf, 55, 7, name)
		pdf.CellFormat(28, 7, followers, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 7, verified, "1", 1, "C", false, 0, "")
	}
}

func addSection(pdf *gofpdf.Fpdf, heading, body string) {
	sectionHeading(pdf, heading)
	pdf.SetFont("Arial", "", 10)
	multiCell(pdf, 0, 5, body)
}

func addDiscrepancies(pdf *gofpdf.Fpdf, discrepancies []verify.Discrepancy) {
	if len(discrepancies) == 0 {
		return
	}
	sectionHeading(pdf, "Discrepancies")
	pdf.SetFont("Arial", "", 10)
	for _, d := range discrepancies {
		line := fmt.Sprintf("[%s] %s: %s",
			strings.ToUpper(d.Severity), d.Field, formatValues(d))
		multiCell(pdf, 0, 5, line)
	}
}

func addItemList(pdf *gofpdf.Fpdf, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sectionHeading(pdf, heading)
	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		multiCell(pdf, 0, 5, "- "+item)
	}
}

func addInterpretation(pdf *gofpdf.Fpdf) {
	sectionHeading(pdf, "How to Interpret")
	pdf.SetFont("Arial", "", 9)
	multiCell(pdf, 0, 5, `80-100 (Excellent / High trust): strong cross-platform identity signals.
60-79 (Good / Moderate trust): mostly consistent, minor gaps.
40-59 (Fair / Low trust): notable gaps or conflicts; verify manually.
0-39 (Poor / Very Low trust): weak or contradictory identity signals.

Scores are generated from public profile data and automated analysis.
They are advisory and not a substitute for manual review.`)
}

// cell writes a borderless sanitized cell ending the line.
func cell(pdf *gofpdf.Fpdf, w, h float64, txt string) {
	pdf.CellFormat(w, h, sanitizeText(txt), "", 1, "L", false, 0, "")
}

// cellBordered writes a bordered sanitized cell continuing the line.
func cellBordered(pdf *gofpdf.Fpdf, w, h float64, txt string) {
	pdf.CellFormat(w, h, sanitizeText(txt), "1", 0, "L", false, 0, "")
}

func multiCell(pdf *gofpdf.Fpdf, w, h float64, txt string) {
	pdf.MultiCell(w, h, sanitizeText(txt), "", "L", false)
}

// sanitizeText converts UTF-8 special characters to ASCII equivalents to
// avoid encoding issues with the core PDF fonts.
func sanitizeText(text string) string {
	if text == "" {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '–', '—': // en/em dash
			result.WriteString("-")
		case '‘', '’': // curly single quotes
			result.WriteString("'")
		case '“', '”': // curly double quotes
			result.WriteString(`"`)
		case '…': // ellipsis
			result.WriteString("...")
		case '•', '·': // bullets
			result.WriteString("-")
		case ' ': // non-breaking space
			result.WriteString(" ")
		default:
			if r <= unicode.MaxASCII {
				result.WriteRune(r)
			} else if unicode.IsSpace(r) {
				result.WriteString(" ")
			} else {
				result.WriteString("?")
			}
		}
	}

	return result.String()
}
