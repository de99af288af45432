package output

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/holdi/holdi/internal/domain"
)

// PDFFormatter renders the projection as an A4 report.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

type pdfReport struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	report *domain.ProjectionReport
}

func (p PDFFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	r := &pdfReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		report: report,
	}
	// Core fonts are cp1252: translate accents and the euro sign.
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle(r.tr("Investment projection: "+report.Name), false)

	r.addSummaryPage()
	r.addYearByYear()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addSummaryPage() {
	rep := r.report
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(31, 59, 111)
	r.pdf.CellFormat(contentWidth, 12, r.tr("Investment projection"), "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(80, 80, 80)
	subtitle := fmt.Sprintf("%s - %s profile, age %d (%s)", rep.Name, rep.Profile.DisplayName(), rep.Age, rep.Bracket)
	r.pdf.CellFormat(contentWidth, 8, r.tr(subtitle), "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.drawSectionHeader("Results")
	widths := []float64{contentWidth / 2, contentWidth / 2}
	r.drawTableRow([]string{"Future value", FormatCurrency(rep.Summary.FutureValue)}, widths, true)
	r.drawTableRow([]string{"Capital gain", FormatCurrency(rep.Summary.CapitalGain)}, widths, false)
	r.drawTableRow([]string{"Total invested", FormatCurrency(rep.Summary.InvestedTotal)}, widths, false)
	r.drawTableRow([]string{"Monthly income", FormatCurrency(rep.Summary.MonthlyIncome)}, widths, false)
	r.drawTableRow([]string{"Estimated annual return", FormatFraction(rep.WeightedAnnualReturn)}, widths, false)
	r.pdf.Ln(6)

	r.drawSectionHeader("Asset allocation")
	r.drawTableHeader([]string{"Asset", "Share"}, widths)
	for _, asset := range allocationByWeight(rep.Allocation) {
		r.drawTableRow([]string{asset, FormatFraction(rep.Allocation[asset])}, widths, false)
	}
	r.drawTableRow([]string{"Total", FormatFraction(rep.Allocation.Sum())}, widths, true)
	r.pdf.Ln(6)

	r.drawSectionHeader("Parameters")
	p := rep.Parameters
	r.drawTableRow([]string{"Initial amount", FormatAmount(p.InitialAmount)}, widths, false)
	r.drawTableRow([]string{"Monthly contribution", FormatAmount(p.MonthlyContribution)}, widths, false)
	r.drawTableRow([]string{"Inflation", fmt.Sprintf("%.2f%%", p.InflationRatePct)}, widths, false)
	r.drawTableRow([]string{"Withdrawal rate", fmt.Sprintf("%.2f%%", p.WithdrawalRatePct)}, widths, false)
	r.drawTableRow([]string{"Years before withdrawals", strconv.Itoa(p.YearsUntilWithdrawal)}, widths, false)
	r.drawTableRow([]string{"Investment horizon", fmt.Sprintf("%d years", p.Years)}, widths, false)
	r.pdf.Ln(6)

	r.drawSectionHeader("Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range Assumptions(rep) {
		r.pdf.MultiCell(contentWidth, 5, r.tr("- "+a), "", "L", false)
	}
}

func (r *pdfReport) addYearByYear() {
	res := r.report.Result
	if res.Years() == 0 {
		return
	}
	r.pdf.AddPage()
	r.drawSectionHeader("Year by year")

	headers := []string{"Year", "Invested", "Earnings", "Withdrawn", "Balance"}
	widths := []float64{20, 40, 40, 40, 40}
	r.drawTableHeader(headers, widths)
	for y := 0; y < res.Years(); y++ {
		if r.pdf.GetY() > 297-marginBottom-10 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		r.drawTableRow([]string{
			strconv.Itoa(res.Timeline[y+1]),
			FormatAmount(res.PrincipalReference[y] + res.Invested[y]),
			FormatAmount(res.Earnings[y]),
			FormatAmount(res.Withdrawals[y]),
			FormatAmount(res.Balances[y]),
		}, widths, y == res.Years()-1)
	}
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.MultiCell(contentWidth, 4, "Projections are estimates based on constant returns and are not financial advice.", "", "C", false)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(31, 59, 111)
	r.pdf.CellFormat(contentWidth, 9, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(31, 59, 111)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(31, 59, 111)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, r.tr(header), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}
	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, r.tr(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
