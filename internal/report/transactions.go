package report

import (
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/models"
)

var transactionColumns = []column{
	{"Date", 35, "C"},
	{"Type", 22, "C"},
	{"Product", 63, "L"},
	{"Qty", 18, "R"},
	{"Unit Price", 25, "R"},
	{"Total", 27, "R"},
}

const dateFormat = "2006-01-02"

func renderTransactions(movements []models.Movement, req Request, now time.Time) (*fpdf.Fpdf, error) {
	d := newDocument(Transactions.Title(), period(req), transactionColumns, now)

	var (
		unitsIn, unitsOut int
		valueIn, valueOut = decimal.Zero, decimal.Zero
	)
	for _, m := range movements {
		total := decimal.NewFromFloat(m.UnitPrice).Mul(decimal.NewFromInt(int64(m.Quantity)))
		if m.Type == models.MovementIn {
			unitsIn += m.Quantity
			valueIn = valueIn.Add(total)
		} else {
			unitsOut += m.Quantity
			valueOut = valueOut.Add(total)
		}

		d.row(
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Type.Label(),
			m.ProductName,
			strconv.Itoa(m.Quantity),
			money(m.UnitPrice),
			"$"+total.StringFixed(2),
		)
	}
	if len(movements) == 0 {
		d.emptyRow("No transactions in this period")
	}

	d.summary("Summary", [][2]string{
		{"Transactions:", strconv.Itoa(len(movements))},
		{"Units in:", strconv.Itoa(unitsIn) + " ($" + valueIn.StringFixed(2) + ")"},
		{"Units out:", strconv.Itoa(unitsOut) + " ($" + valueOut.StringFixed(2) + ")"},
		{"Net change:", strconv.Itoa(unitsIn - unitsOut)},
	})

	if err := d.err(); err != nil {
		return nil, apperr.Storage("render transaction report", err)
	}
	return d.pdf, nil
}

func period(req Request) string {
	switch {
	case req.Since != nil && req.Until != nil:
		return "Period: " + req.Since.Format(dateFormat) + " to " + req.Until.Format(dateFormat)
	case req.Since != nil:
		return "Period: from " + req.Since.Format(dateFormat)
	case req.Until != nil:
		return "Period: until " + req.Until.Format(dateFormat)
	default:
		return "Period: all transactions"
	}
}
