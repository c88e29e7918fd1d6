package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

// Fixed column widths of the report table.
const (
	colDate    = 11
	colService = 30
	colUSD     = 12
	colJPY     = 12
)

// yenPrinter groups thousands in yen figures (1234567 -> "1,234,567").
var yenPrinter = message.NewPrinter(language.English)

// FormatOptions configures the report table renderer.
type FormatOptions struct {
	Title     string
	StartDate string
	EndDate   string
	Profile   string
	Rate      float64
	Mode      entity.DisplayMode
}

// pad right-pads (or truncates) to width, counting runes so the yen sign
// does not skew the columns.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func padLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return strings.Repeat(" ", width-len(runes)) + s
}

func separator(mode entity.DisplayMode) string {
	widths := []int{colDate, colService, colUSD, colJPY}
	if mode == entity.ModeJPY {
		widths = []int{colDate, colService, colJPY}
	}
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, " ")
}

func formatYen(jpy int64) string {
	return yenPrinter.Sprintf("¥%d", jpy)
}

// rowAmounts applies the per-mode currency rule for one entry. inUSD reports
// whether the entry counts toward the USD column and total. In mixed mode a
// currency that is neither USD nor JPY falls through to the USD branch and is
// converted; a known limitation carried over from the observed behavior.
func rowAmounts(e entity.CostEntry, mode entity.DisplayMode, rate float64) (usd float64, jpy int64, inUSD bool) {
	if mode == entity.ModeJPY || (mode == entity.ModeMixed && e.Currency == "JPY") {
		return 0, ConvertToJPY(e.Amount, 1), false
	}
	return e.Amount, ConvertToJPY(e.Amount, rate), true
}

// Totals returns the summed USD amount and the per-row-rounded JPY total that
// the TOTAL row of the rendered table reports. The JPY total is the sum of
// each row's independently rounded conversion, not a single rounding of the
// summed USD figure.
func Totals(entries []entity.CostEntry, mode entity.DisplayMode, rate float64) (float64, int64) {
	var totalUSD float64
	var totalJPY int64
	for _, e := range entries {
		usd, jpy, inUSD := rowAmounts(e, mode, rate)
		if inUSD {
			totalUSD += usd
		}
		totalJPY += jpy
	}
	return totalUSD, totalJPY
}

// FormatTable renders entries plus a TOTAL row as a fixed-width text table.
// It is a pure function and accepts any input without error; unknown
// characters in service names are truncated, not rejected.
func FormatTable(entries []entity.CostEntry, opts FormatOptions) string {
	lines := make([]string, 0, len(entries)+8)

	lines = append(lines, fmt.Sprintf("%s: %s → %s", opts.Title, opts.StartDate, opts.EndDate))

	profilePart := ""
	if opts.Profile != "" {
		profilePart = fmt.Sprintf("Profile: %s | ", opts.Profile)
	}
	if opts.Mode == entity.ModeJPY {
		lines = append(lines, profilePart+"(JPY billing)")
	} else {
		lines = append(lines, fmt.Sprintf("%sExchange rate: 1 USD = ¥%.2f", profilePart, opts.Rate))
	}
	lines = append(lines, "")

	if opts.Mode == entity.ModeJPY {
		lines = append(lines, pad("Date", colDate)+" "+pad("Service", colService)+" "+padLeft("JPY", colJPY))
	} else {
		lines = append(lines, pad("Date", colDate)+" "+pad("Service", colService)+" "+padLeft("USD", colUSD)+" "+padLeft("JPY", colJPY))
	}
	lines = append(lines, separator(opts.Mode))

	var totalUSD float64
	var totalJPY int64

	for _, e := range entries {
		usd, jpy, inUSD := rowAmounts(e, opts.Mode, opts.Rate)
		if inUSD {
			totalUSD += usd
		}
		totalJPY += jpy

		row := pad(e.Date.String(), colDate) + " " + pad(e.Service, colService)
		if opts.Mode != entity.ModeJPY {
			usdCell := ""
			if inUSD {
				usdCell = fmt.Sprintf("$%.2f", usd)
			}
			row += " " + padLeft(usdCell, colUSD)
		}
		row += " " + padLeft(formatYen(jpy), colJPY)
		lines = append(lines, row)
	}

	if len(entries) == 0 {
		lines = append(lines, "(no costs found for this period)")
	}

	lines = append(lines, separator(opts.Mode))

	totalRow := pad("TOTAL", colDate) + " " + pad("", colService)
	switch opts.Mode {
	case entity.ModeJPY:
		totalRow += " " + padLeft(formatYen(totalJPY), colJPY)
	case entity.ModeMixed:
		totalRow += " " + padLeft("", colUSD) + " " + padLeft(formatYen(totalJPY), colJPY)
	default:
		totalRow += " " + padLeft(fmt.Sprintf("$%.2f", totalUSD), colUSD) + " " + padLeft(formatYen(totalJPY), colJPY)
	}
	lines = append(lines, totalRow)

	return strings.Join(lines, "\n")
}
