package usecase

import (
	"strings"
	"testing"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

func usdOpts() FormatOptions {
	return FormatOptions{
		Title:     "AWS Cost Report",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-04",
		Rate:      150,
		Mode:      entity.ModeUSD,
	}
}

func TestFormatTableUSDMode(t *testing.T) {
	entries := []entity.CostEntry{
		{Date: day(t, "2025-03-01"), Service: "Amazon EC2", Amount: 1.23, Currency: "USD"},
		{Date: day(t, "2025-03-02"), Service: "Amazon S3", Amount: 0.10, Currency: "USD"},
	}

	out := FormatTable(entries, usdOpts())
	lines := strings.Split(out, "\n")

	if lines[0] != "AWS Cost Report: 2025-03-01 → 2025-03-04" {
		t.Errorf("unexpected title line: %q", lines[0])
	}
	if lines[1] != "Exchange rate: 1 USD = ¥150.00" {
		t.Errorf("unexpected rate line: %q", lines[1])
	}
	if lines[2] != "" {
		t.Errorf("expected blank line, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Date") || !strings.Contains(lines[3], "USD") || !strings.Contains(lines[3], "JPY") {
		t.Errorf("unexpected header: %q", lines[3])
	}

	if !strings.Contains(out, "$1.23") {
		t.Errorf("missing USD amount:\n%s", out)
	}
	if !strings.Contains(out, "¥185") { // 1.23 * 150 = 184.5
		t.Errorf("missing converted yen:\n%s", out)
	}

	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "TOTAL") {
		t.Errorf("expected TOTAL row last, got %q", last)
	}
	if !strings.Contains(last, "$1.33") {
		t.Errorf("unexpected USD total: %q", last)
	}
	// per-row rounding: 185 + 15, not round(1.33*150) = 200 vs 200; use row sum
	if !strings.Contains(last, "¥200") {
		t.Errorf("unexpected JPY total: %q", last)
	}
}

func TestFormatTableTotalsSumPerRowRounding(t *testing.T) {
	// Each row rounds 12.5 up to 13; a single rounding of the sum would
	// give 25.
	entries := []entity.CostEntry{
		{Date: day(t, "2025-03-01"), Service: "A", Amount: 0.125, Currency: "USD"},
		{Date: day(t, "2025-03-02"), Service: "B", Amount: 0.125, Currency: "USD"},
	}

	opts := usdOpts()
	opts.Rate = 100
	out := FormatTable(entries, opts)

	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "¥26") {
		t.Errorf("expected per-row-rounded total ¥26, got %q", last)
	}

	_, totalJPY := Totals(entries, entity.ModeUSD, 100)
	if totalJPY != 26 {
		t.Errorf("Totals JPY = %d, want 26", totalJPY)
	}
}

func TestFormatTableJPYMode(t *testing.T) {
	entries := []entity.CostEntry{
		{Date: day(t, "2025-03-01"), Service: "BigQuery", Amount: 120, Currency: "JPY"},
		{Date: day(t, "2025-03-02"), Service: "Compute Engine", Amount: 1234567, Currency: "JPY"},
	}

	opts := FormatOptions{
		Title:     "GCP Cost Report",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-04",
		Mode:      entity.ModeJPY,
	}
	out := FormatTable(entries, opts)

	if strings.Contains(out, "$") {
		t.Errorf("JPY-only table must not contain a dollar sign:\n%s", out)
	}
	if !strings.Contains(out, "(JPY billing)") {
		t.Errorf("missing JPY billing line:\n%s", out)
	}
	if strings.Contains(out, "Exchange rate") {
		t.Errorf("JPY-only table must not mention the exchange rate:\n%s", out)
	}
	if !strings.Contains(out, "¥1,234,567") {
		t.Errorf("missing thousands-grouped yen:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	if strings.Contains(lines[3], "USD") {
		t.Errorf("JPY-only header must not have a USD column: %q", lines[3])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "¥1,234,687") {
		t.Errorf("unexpected JPY total: %q", last)
	}
}

func TestFormatTableJPYModeEmpty(t *testing.T) {
	opts := FormatOptions{
		Title:     "GCP Cost Report",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-04",
		Mode:      entity.ModeJPY,
	}
	out := FormatTable(nil, opts)

	if !strings.Contains(out, "(JPY billing)") {
		t.Errorf("missing JPY billing line:\n%s", out)
	}
	if !strings.Contains(out, "(no costs found for this period)") {
		t.Errorf("missing empty-period message:\n%s", out)
	}
	if strings.Contains(out, "Exchange rate") || strings.Contains(out, "$") {
		t.Errorf("JPY-only output must not mention dollars or the rate:\n%s", out)
	}
	if !strings.Contains(out, "¥0") {
		t.Errorf("expected zero yen total:\n%s", out)
	}
}

func TestFormatTableMixedMode(t *testing.T) {
	entries := []entity.CostEntry{
		{Date: day(t, "2025-03-01"), Service: "AWS / Amazon EC2", Amount: 1.00, Currency: "USD"},
		{Date: day(t, "2025-03-01"), Service: "GCP / BigQuery", Amount: 100, Currency: "JPY"},
	}

	opts := FormatOptions{
		Title:     "Combined Cost Report",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-02",
		Rate:      150,
		Mode:      entity.ModeMixed,
	}
	out := FormatTable(entries, opts)
	lines := strings.Split(out, "\n")

	var jpyRow string
	for _, l := range lines {
		if strings.Contains(l, "GCP / BigQuery") {
			jpyRow = l
		}
	}
	if jpyRow == "" {
		t.Fatalf("JPY row missing:\n%s", out)
	}
	if strings.Contains(jpyRow, "$") {
		t.Errorf("JPY row must leave the USD cell blank: %q", jpyRow)
	}
	if !strings.Contains(jpyRow, "¥100") {
		t.Errorf("JPY row must show the unconverted amount: %q", jpyRow)
	}

	last := lines[len(lines)-1]
	if strings.Contains(last, "$") {
		t.Errorf("mixed-mode total must not show a USD figure: %q", last)
	}
	if !strings.Contains(last, "¥250") { // 150 converted + 100 native
		t.Errorf("expected combined total ¥250, got %q", last)
	}
}

func TestFormatTableProfileLine(t *testing.T) {
	opts := usdOpts()
	opts.Profile = "default"

	out := FormatTable(nil, opts)
	if !strings.Contains(out, "Profile: default | Exchange rate: 1 USD = ¥150.00") {
		t.Errorf("missing profile prefix:\n%s", out)
	}
}

func TestFormatTableEmptyEntries(t *testing.T) {
	out := FormatTable(nil, usdOpts())

	if !strings.Contains(out, "(no costs found for this period)") {
		t.Errorf("missing empty-period message:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "$0.00") || !strings.Contains(last, "¥0") {
		t.Errorf("expected zero totals, got %q", last)
	}
}

func TestFormatTableColumnsAlign(t *testing.T) {
	entries := []entity.CostEntry{
		{Date: day(t, "2025-03-01"), Service: "Amazon Elastic Compute Cloud - Compute", Amount: 12.3456, Currency: "USD"},
		{Date: day(t, "2025-03-02"), Service: "S3", Amount: 0.01, Currency: "USD"},
	}

	out := FormatTable(entries, usdOpts())
	lines := strings.Split(out, "\n")

	// header, separators, entry rows and the TOTAL row all share one width
	want := len([]rune(lines[3]))
	for _, l := range lines[3:] {
		if got := len([]rune(l)); got != want {
			t.Errorf("misaligned line (%d runes, want %d): %q", got, want, l)
		}
	}

	if !strings.Contains(out, "Amazon Elastic Compute Cloud -") {
		t.Errorf("long service name should be truncated to the column:\n%s", out)
	}
}
