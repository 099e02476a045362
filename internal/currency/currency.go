package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// symbols maps ISO-4217 codes to their display symbols. The table is a
// static dataset; codes missing from it fall back to the raw code so
// formatting never fails on an unknown currency.
var symbols = map[string]string{
	"AED": "د.إ",
	"ARS": "$",
	"AUD": "$",
	"BDT": "৳",
	"BRL": "R$",
	"CAD": "$",
	"CHF": "CHF",
	"CLP": "$",
	"CNY": "¥",
	"COP": "$",
	"CZK": "Kč",
	"DKK": "kr",
	"EGP": "£",
	"EUR": "€",
	"GBP": "£",
	"HKD": "$",
	"HUF": "Ft",
	"IDR": "Rp",
	"ILS": "₪",
	"INR": "₹",
	"JPY": "¥",
	"KES": "KSh",
	"KRW": "₩",
	"MXN": "$",
	"MYR": "RM",
	"NGN": "₦",
	"NOK": "kr",
	"NZD": "$",
	"PHP": "₱",
	"PKR": "₨",
	"PLN": "zł",
	"RUB": "₽",
	"SAR": "﷼",
	"SEK": "kr",
	"SGD": "$",
	"THB": "฿",
	"TRY": "₺",
	"TWD": "NT$",
	"USD": "$",
	"VND": "₫",
	"ZAR": "R",
}

// Symbol resolves a currency code to its display symbol, returning the
// uppercased code itself when the currency is unknown.
func Symbol(code string) string {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if sym, ok := symbols[upper]; ok {
		return sym
	}
	return upper
}

// Format renders an amount as symbol plus fixed two-decimal value, the
// shape the console displays everywhere ("$90.00").
func Format(amount decimal.Decimal, code string) string {
	return Symbol(code) + amount.StringFixed(2)
}
