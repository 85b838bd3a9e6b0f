package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way Indonesian invoices print it, e.g. "Rp 1.500.000".
// Amounts are rounded to whole rupiah.
func FormatRupiah(amount decimal.Decimal) string {
	v := amount.Round(0).IntPart()
	if v < 0 {
		return idPrinter.Sprintf("-Rp %d", -v)
	}
	return idPrinter.Sprintf("Rp %d", v)
}

// FormatPercent renders a percentage with two decimals using Indonesian separators, e.g. "33,33%".
func FormatPercent(p decimal.Decimal) string {
	f, _ := p.Round(2).Float64()
	return idPrinter.Sprintf("%.2f%%", f)
}
