package infra

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printerCO = message.NewPrinter(language.MustParse("es-CO"))

// FormatearPesos renders a monto as Colombian pesos for receipts: dot
// thousands grouping, no decimals ($ 1.234.500).
func FormatearPesos(monto decimal.Decimal) string {
	return printerCO.Sprintf("$ %v", number.Decimal(monto.InexactFloat64(), number.MaxFractionDigits(0)))
}
