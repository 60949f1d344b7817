package factory

import "strings"

// =============================================================================
// CURRENCY - Display symbols only, no conversion
// =============================================================================

// Currency is an ISO 4217 code with the symbol prefixed to displayed
// amounts. Exports never carry the symbol.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// DefaultCurrency is used when a request names none.
var DefaultCurrency = Currency{Code: "USD", Symbol: "$"}

var currencies = []Currency{
	DefaultCurrency,
	{Code: "EUR", Symbol: "€"},
	{Code: "GBP", Symbol: "£"},
	{Code: "INR", Symbol: "₹"},
	{Code: "JPY", Symbol: "¥"},
}

// Currencies lists the selectable currencies.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// LookupCurrency resolves a code case-insensitively. An empty code yields
// DefaultCurrency; an unknown one is used as its own symbol.
func LookupCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	for _, c := range currencies {
		if c.Code == code {
			return c
		}
	}
	return Currency{Code: code, Symbol: code + " "}
}

// Format prefixes the symbol to an already formatted amount.
func (c Currency) Format(amount string) string {
	if strings.HasPrefix(amount, "-") {
		return "-" + c.Symbol + amount[1:]
	}
	return c.Symbol + amount
}
