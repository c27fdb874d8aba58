// Package pdf renders the paginated A4 invoice document.
//
// Page layout, portrait, 15mm margins:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: seller name          │  INVOICE + number + date    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: name/address/contact │ DETAILS: due date + status │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Description | Qty | Price | Amount               │
//	│         (header band repeated on every page; rows never     │
//	│          split across a page break)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / Discount / Total / Paid / Due      │
//	│  NOTES + UPI payment QR                                      │
//	│  FOOTER: rule + disclaimer + "Page i of N"                   │
//	└─────────────────────────────────────────────────────────────┘
//
// Pagination is decided by the pure layout engine in layout.go; this file
// only translates laid-out pages into Maroto components.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
	"github.com/billforge/billforge-api/pkg/logger"
	"github.com/billforge/billforge-api/pkg/upi"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRowAlt  = &props.Color{Red: 240, Green: 244, Blue: 250}
	colorPaid    = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorWarning = &props.Color{Red: 230, Green: 126, Blue: 34}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoPDFGenerator struct {
	sellerName string
	payeeVPA   string
	log        *logger.Logger
}

// NewMarotoPDFGenerator builds the generator. payeeVPA is the UPI handle
// embedded in the payment QR; sellerName heads the document and doubles as
// the UPI payee name.
func NewMarotoPDFGenerator(sellerName, payeeVPA string, log *logger.Logger) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{sellerName: sellerName, payeeVPA: payeeVPA, log: log}
}

// GenerateInvoicePDF renders the document and returns its bytes. A QR
// link-building failure is logged and the document renders without the
// code; any Maroto failure is fatal and no bytes are returned.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, snap invoice.Snapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.Bottom,
			Size:    8,
			Color:   colorGray,
		}).
		WithTitle("Invoice "+snap.InvoiceNumber, true).
		WithAuthor(g.sellerName, true).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(footerRows()...); err != nil {
		return nil, fmt.Errorf("pdf: register footer: %w", err)
	}

	// The embedded amount is the amount due at generation time, never a
	// figure cached from an earlier view.
	qrLink := g.paymentLink(snap)

	var notes []string
	if snap.Notes != "" {
		notes = wrapText(snap.Notes, notesWrapWidth)
	}

	descs := make([]string, len(snap.Items))
	for i, it := range snap.Items {
		descs[i] = itemDescription(it)
	}
	tail := tailHeight(
		snap.DiscountAmount.IsPositive(),
		snap.AmountPaid.IsPositive(),
		len(notes),
		qrLink != "",
	)

	for pi, pl := range paginate(descs, tail) {
		p := page.New()
		if pi == 0 { // first page carries the document head
			p.Add(headerRow(snap, g.sellerName))
			p.Add(line.NewRow(ruleHeight, props.Line{Color: colorPrimary, Thickness: 0.5}))
			p.Add(billToRow(snap))
			p.Add(line.NewRow(ruleHeight, props.Line{Color: colorPrimary, Thickness: 0.3}))
		}
		p.Add(tableHeaderRow())
		for _, r := range pl.Rows {
			p.Add(itemTableRow(r, snap.Items[r.Index]))
		}
		if pl.HasTail {
			p.Add(line.NewRow(ruleHeight, props.Line{Color: colorPrimary, Thickness: 0.3}))
			p.Add(totalsRows(snap)...)
			p.Add(notesRows(notes)...)
			if qrLink != "" {
				p.Add(qrRow(qrLink, snap.Totals.AmountDue))
			}
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// paymentLink builds the UPI deep link for the QR, or "" when the link
// cannot be built. Failure here never aborts the document.
func (g *MarotoPDFGenerator) paymentLink(snap invoice.Snapshot) string {
	link, err := upi.BuildPaymentLink(g.payeeVPA, g.sellerName, snap.Totals.AmountDue, snap.InvoiceNumber)
	if err != nil {
		g.log.Warn().
			Err(err).
			Str("invoice", snap.InvoiceNumber).
			Msg("payment QR skipped")
		return ""
	}
	return link
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: seller name (left), "INVOICE" + number + issue date (right).
func headerRow(snap invoice.Snapshot, sellerName string) core.Row {
	return row.New(headerBandHeight).Add(
		col.New(7).Add(
			text.New(sellerName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(snap.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New("Date: "+snap.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billToRow: customer block (left) and invoice details with the colored
// status label (right).
func billToRow(snap invoice.Snapshot) core.Row {
	c := snap.Customer
	statusColor := colorWarning
	if snap.Status == entity.StatusPaid {
		statusColor = colorPaid
	}
	return row.New(billToHeight).Add(
		col.New(7).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(c.Address, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s",
				nonEmpty(c.Email, "—"), nonEmpty(c.Phone, "—"),
			), props.Text{Size: 8, Top: 17, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Due date: "+snap.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New(snap.Status, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Top: 12, Color: statusColor,
			}),
		),
	)
}

// tableHeaderRow: the colored header band, re-emitted at the top of every
// page that carries item rows.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(tableHeaderHeight).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Description", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Price", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// itemTableRow: one laid-out invoice line. Height comes from the wrapped
// description; the background alternates by the item's global index so the
// banding stays consistent across page breaks.
func itemTableRow(r itemRow, item entity.InvoiceItem) core.Row {
	descCol := col.New(6)
	for i, ln := range r.Lines {
		descCol.Add(text.New(ln, props.Text{
			Size: 8, Align: align.Left, Top: float64(i)*tableLineHeight + 1, Left: 1,
		}))
	}
	out := row.New(r.Height).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", r.Index+1),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		descCol,
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", item.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			formatMoney(item.UnitPrice),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			formatMoney(item.LineTotal()),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
	if r.Index%2 == 1 {
		out.WithStyle(&props.Cell{BackgroundColor: colorRowAlt})
	}
	return out
}

// totalsRows: the right-aligned totals block, recomputed figures only.
// Discount and Amount Paid lines appear only when positive; the grand
// total restates the amount due, emphasized.
func totalsRows(snap invoice.Snapshot) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 0.5,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: 0.5})
	}
	pair := func(l, v string) core.Row {
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(label(l)),
			col.New(3).Add(value(v)),
		)
	}
	shortRule := func(thickness float64) core.Row {
		return row.New(ruleHeight).Add(
			col.New(6),
			col.New(6).Add(line.New(props.Line{Color: colorPrimary, Thickness: thickness})),
		)
	}

	t := snap.Totals
	rows := []core.Row{
		pair("Subtotal:", formatMoney(t.Subtotal)),
		pair(fmt.Sprintf("Tax (%d%%):", snap.TaxPercent), formatMoney(t.TaxAmount)),
	}
	if snap.DiscountAmount.IsPositive() {
		rows = append(rows, pair("Discount:", "- "+formatMoney(snap.DiscountAmount)))
	}
	rows = append(rows, shortRule(0.3), pair("Total:", formatMoney(t.Total)))
	if snap.AmountPaid.IsPositive() {
		rows = append(rows, pair("Amount Paid:", formatMoney(snap.AmountPaid)))
	}
	rows = append(rows,
		pair("Amount Due:", formatMoney(t.AmountDue)),
		shortRule(0.5),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New("GRAND TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(formatMoney(t.AmountDue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 1,
			})),
		),
	)
	return rows
}

// notesRows: the optional free-text notes block, pre-wrapped.
func notesRows(lines []string) []core.Row {
	if len(lines) == 0 {
		return nil
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Notes", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, ln := range lines {
		rows = append(rows, row.New(tableLineHeight).Add(col.New(12).Add(
			text.New(ln, props.Text{Size: 8, Color: colorGray, Top: 0.5}),
		)))
	}
	return rows
}

// qrRow: the UPI payment QR with a caption restating the amount due.
func qrRow(link string, amountDue decimal.Decimal) core.Row {
	return row.New(42).Add(
		col.New(4).Add(code.NewQr(link, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Scan to pay via UPI", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 10, Left: 3, Color: colorPrimary,
			}),
			text.New("Amount due: "+formatMoney(amountDue), props.Text{
				Size: 9, Top: 16, Left: 3,
			}),
		),
	)
}

// footerRows: horizontal rule plus the fixed disclaimer, drawn on every
// page above the page number.
func footerRows() []core.Row {
	return []core.Row{
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(6).Add(col.New(12).Add(
			text.New(
				"This is a computer-generated invoice and does not require a signature. "+
					"Please retain this document for your records.",
				props.Text{Size: 6.5, Color: colorGray, Top: 1, Align: align.Center},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// itemDescription is the text wrapped into the description column.
func itemDescription(it entity.InvoiceItem) string {
	if it.ProductCode == "" {
		return it.ProductName
	}
	return fmt.Sprintf("%s [%s]", it.ProductName, it.ProductCode)
}

// formatMoney renders an amount with Indian digit grouping and a currency
// prefix. The core PDF fonts cannot encode the rupee sign, so "Rs." it is.
func formatMoney(d decimal.Decimal) string {
	return "Rs. " + invoice.FormatAmount(d)
}
