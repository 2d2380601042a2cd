// Package currency renders monetary amounts for display. Internal price
// math never goes through here; only formatted totals do.
package currency

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders an amount in the given ISO 4217 currency for an en-US
// locale. Unknown codes degrade to "CODE 12.34" rather than failing.
func Format(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}
