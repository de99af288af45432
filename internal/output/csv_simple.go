package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/holdi/holdi/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per simulated year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Principal", "Invested", "PrincipalPlusInvested", "Earnings", "Withdrawals", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	r := report.Result
	for y := 0; y < r.Years(); y++ {
		row := []string{
			strconv.Itoa(r.Timeline[y+1]),
			money(r.PrincipalReference[y]),
			money(r.Invested[y]),
			money(r.PrincipalReference[y] + r.Invested[y]),
			money(r.Earnings[y]),
			money(r.Withdrawals[y]),
			money(r.Balances[y]),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
