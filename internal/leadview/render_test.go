package leadview

import (
	"strings"
	"testing"
)

func TestHighlightMarksCaseInsensitiveMatches(t *testing.T) {
	got := Highlight("Ram Kumar", "ram")
	if got != "<mark>Ram</mark> Kumar" {
		t.Fatalf("unexpected highlight: %q", got)
	}

	got = Highlight("rama ramA", "ram")
	if got != "<mark>ram</mark>a <mark>ram</mark>A" {
		t.Fatalf("expected every occurrence marked: %q", got)
	}
}

func TestHighlightNoTermOrNoMatch(t *testing.T) {
	if got := Highlight("Ram Kumar", ""); got != "Ram Kumar" {
		t.Fatalf("empty term must not change text: %q", got)
	}
	if got := Highlight("Ram Kumar", "xyz"); got != "Ram Kumar" {
		t.Fatalf("non-matching term must not change text: %q", got)
	}
}

func TestHighlightEscapesRegexMeta(t *testing.T) {
	if got := Highlight("a+b", "a+b"); got != "<mark>a+b</mark>" {
		t.Fatalf("meta characters must match literally: %q", got)
	}
}

func TestFormatMoneyIndianGrouping(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"450000", "4,50,000"},
		{"1234567", "12,34,567"},
		{"999", "999"},
		{"", "-"},
		{"N/A", "N/A"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Fatalf("FormatMoney(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestProjectRowPlaceholders(t *testing.T) {
	l := Lead{LoanID: "L1", Data: map[string]interface{}{}}
	rows := ProjectRows([]Lead{l}, "")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Name != "-" || row.Mobile != "-" || row.UTR != "-" || row.Stage != "-" || row.Updated != "-" {
		t.Fatalf("expected placeholders for absent fields: %+v", row)
	}
}

func TestProjectRowFallbackFields(t *testing.T) {
	l := Lead{
		LoanID: "L1",
		Data: map[string]interface{}{
			"loanDsa":    "HDFC",
			"caseDealer": "Sharma Motors",
		},
	}
	row := ProjectRows([]Lead{l}, "")[0]
	if row.BankFinance != "HDFC" {
		t.Fatalf("expected loanDsa fallback, got %q", row.BankFinance)
	}
	if row.Dealer != "Sharma Motors" {
		t.Fatalf("expected caseDealer fallback, got %q", row.Dealer)
	}
}

func TestProjectRowPaymentSummary(t *testing.T) {
	l := Lead{
		LoanID: "L1",
		Data: map[string]interface{}{
			"payments": []interface{}{
				map[string]interface{}{"amount": "5000", "utrNo": "UTR881", "date": "2026-01-15"},
				map[string]interface{}{"amount": "2500", "utrNo": "UTR992", "date": "2026-02-01"},
			},
		},
	}
	row := ProjectRows([]Lead{l}, "")[0]
	if row.UTR != "5000 | UTR881 | 2026-01-15" {
		t.Fatalf("unexpected payment summary: %q", row.UTR)
	}
}

func TestProjectRowPartialPayment(t *testing.T) {
	l := Lead{
		LoanID: "L1",
		Data: map[string]interface{}{
			"payments": []interface{}{
				map[string]interface{}{"utrNo": "UTR881"},
			},
		},
	}
	row := ProjectRows([]Lead{l}, "")[0]
	if row.UTR != "UTR881" {
		t.Fatalf("expected bare utr without separators: %q", row.UTR)
	}
}

func TestProjectRowHighlightsSearchTerm(t *testing.T) {
	l := Lead{
		LoanID: "L1",
		Data: map[string]interface{}{
			"name":   "Ram Kumar",
			"mobile": "9876500011",
		},
	}
	row := ProjectRows([]Lead{l}, "ram")[0]
	if !strings.Contains(row.Name, "<mark>Ram</mark>") {
		t.Fatalf("expected highlighted name, got %q", row.Name)
	}
	if strings.Contains(row.Mobile, "<mark>") {
		t.Fatalf("mobile must not be highlighted for %q: %q", "ram", row.Mobile)
	}
}

func TestProjectRowFormatsTimestamp(t *testing.T) {
	l := Lead{
		LoanID:    "L1",
		Data:      map[string]interface{}{},
		CreatedAt: "2026-01-15T10:30:00Z",
	}
	row := ProjectRows([]Lead{l}, "")[0]
	if row.Updated != "15 Jan 2026 10:30" {
		t.Fatalf("unexpected timestamp render: %q", row.Updated)
	}

	l.UpdatedAt = "not-a-time"
	row = ProjectRows([]Lead{l}, "")[0]
	if row.Updated != "not-a-time" {
		t.Fatalf("unparsable timestamps render raw, got %q", row.Updated)
	}
}
