package leadview

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const placeholder = "-"

// Row is a lead projected into the display columns of the cases table.
// Fields carry <mark> markers around search matches.
type Row struct {
	LoanID      string `json:"loan_id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	LoanAmount  string `json:"loan_amount"`
	BankFinance string `json:"bank_finance"`
	Dealer      string `json:"dealer"`
	RefName     string `json:"ref_name"`
	UTR         string `json:"utr"`
	Stage       string `json:"stage"`
	Updated     string `json:"updated"`
}

var moneyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// ProjectRows maps leads to display rows, highlighting searchTerm matches.
func ProjectRows(leads []Lead, searchTerm string) []Row {
	rows := make([]Row, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, projectRow(l, searchTerm))
	}
	return rows
}

func projectRow(l Lead, term string) Row {
	return Row{
		LoanID:      Highlight(orDash(l.LoanID), term),
		Name:        Highlight(orDash(l.field("name")), term),
		Mobile:      Highlight(orDash(l.field("mobile")), term),
		LoanAmount:  Highlight(FormatMoney(l.field("loanAmount")), term),
		BankFinance: Highlight(orDash(firstOf(l, "bankFinance", "loanDsa")), term),
		Dealer:      Highlight(orDash(firstOf(l, "basicCaseDealerSelect", "caseDealer")), term),
		RefName:     Highlight(orDash(l.field("basicRefNameMobile")), term),
		UTR:         Highlight(paymentSummary(l), term),
		Stage:       Highlight(orDash(l.Stage()), term),
		Updated:     formatWhen(l.UpdatedAt, l.CreatedAt),
	}
}

// Highlight wraps every case-insensitive occurrence of term in <mark> tags,
// preserving the original casing of the matched text.
func Highlight(text, term string) string {
	term = strings.TrimSpace(term)
	if term == "" || text == "" {
		return text
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return "<mark>" + m + "</mark>"
	})
}

// FormatMoney renders an amount with Indian digit grouping (12,34,567).
// Non-numeric input is shown as-is; decimals are kept only when present.
func FormatMoney(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return placeholder
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return raw
	}
	return moneyPrinter.Sprint(number.Decimal(v))
}

// paymentSummary condenses the first recorded payment into "amount | utr | date".
func paymentSummary(l Lead) string {
	raw, ok := l.Data["payments"]
	if !ok {
		return placeholder
	}
	payments, ok := raw.([]interface{})
	if !ok || len(payments) == 0 {
		return placeholder
	}
	first, ok := payments[0].(map[string]interface{})
	if !ok {
		return placeholder
	}

	parts := make([]string, 0, 3)
	for _, key := range []string{"amount", "utrNo", "date"} {
		if v, ok := first[key]; ok && v != nil {
			if s := coerceString(v); s != "" {
				parts = append(parts, s)
			}
		}
	}
	if len(parts) == 0 {
		return placeholder
	}
	return strings.Join(parts, " | ")
}

func formatWhen(updated, created string) string {
	ts := updated
	if ts == "" {
		ts = created
	}
	if ts == "" {
		return placeholder
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("02 Jan 2006 15:04")
}

func firstOf(l Lead, keys ...string) string {
	for _, key := range keys {
		if v := l.field(key); v != "" {
			return v
		}
	}
	return ""
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
