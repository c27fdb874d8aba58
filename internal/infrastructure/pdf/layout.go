package pdf

import "strings"

// Layout constants, in millimetres, on an A4 portrait page with 15mm
// margins (usable area 180 × 267). The footer (rule + disclaimer + page
// number) is reserved on every page; table rows never enter that zone.
const (
	usableHeight = 267.0
	footerZone   = 14.0
	contentLimit = usableHeight - footerZone

	headerBandHeight  = 18.0
	billToHeight      = 26.0
	ruleHeight        = 1.0
	tableHeaderHeight = 8.0

	// First page carries the header band, bill-to/detail blocks and the
	// table header before the first item row; continuation pages only
	// re-emit the table header band.
	firstPageTop = headerBandHeight + ruleHeight + billToHeight + ruleHeight + tableHeaderHeight
	nextPageTop  = tableHeaderHeight

	tableLineHeight = 4.0
	minRowHeight    = 7.0

	// Character widths for word wrapping: the description column and the
	// lower-left notes block.
	descWrapWidth  = 45
	notesWrapWidth = 80
)

// itemRow is the laid-out form of one invoice line: its position in the
// item list (global, so alternating backgrounds stay consistent across a
// page break), the wrapped description lines and the resulting height.
type itemRow struct {
	Index  int
	Lines  []string
	Height float64
}

// pageLayout lists the item rows placed on one page. HasTail marks the
// page closing the document with the totals/notes/QR section.
type pageLayout struct {
	Rows    []itemRow
	HasTail bool
}

// wrapText word-wraps s to at most width characters per line. Words
// longer than width are hard-split. Always returns at least one line.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	flush := func() {
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
	}
	for _, w := range words {
		for len(w) > width {
			flush()
			lines = append(lines, w[:width])
			w = w[width:]
		}
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= width:
			cur += " " + w
		default:
			flush()
			cur = w
		}
	}
	flush()
	return lines
}

// layoutItemRow wraps one description and derives the row height:
// max(lineCount × lineHeight, minRowHeight).
func layoutItemRow(index int, description string) itemRow {
	lines := wrapText(description, descWrapWidth)
	h := float64(len(lines)) * tableLineHeight
	if h < minRowHeight {
		h = minRowHeight
	}
	return itemRow{Index: index, Lines: lines, Height: h}
}

// paginate distributes the item rows over pages, threading an explicit
// vertical cursor. Before each row: if it would cross into the footer
// zone, the row moves whole to a new page (rows are never split). The
// closing tail section (totals, notes, QR) of height tailHeight follows
// the last row, moved whole to a fresh page when it does not fit.
func paginate(descriptions []string, tailHeight float64) []pageLayout {
	pages := []pageLayout{{}}
	cursor := firstPageTop
	for i, desc := range descriptions {
		r := layoutItemRow(i, desc)
		if cursor+r.Height > contentLimit {
			pages = append(pages, pageLayout{})
			cursor = nextPageTop
		}
		last := len(pages) - 1
		pages[last].Rows = append(pages[last].Rows, r)
		cursor += r.Height
	}
	if cursor+tailHeight > contentLimit {
		pages = append(pages, pageLayout{})
	}
	pages[len(pages)-1].HasTail = true
	return pages
}

// tailHeight computes the height of the closing section: the totals
// block (optional discount and amount-paid lines), the notes block and
// the payment QR.
func tailHeight(hasDiscount, hasPaid bool, notesLines int, withQR bool) float64 {
	h := 3.0 // gap after the last item row
	// Subtotal, Tax, rule, Total, Amount Due, rule, Grand Total.
	h += 5 + 5 + ruleHeight + 5 + 5 + ruleHeight + 7
	if hasDiscount {
		h += 5
	}
	if hasPaid {
		h += 5
	}
	if notesLines > 0 {
		h += 6 + float64(notesLines)*tableLineHeight
	}
	if withQR {
		h += 42
	}
	return h
}
