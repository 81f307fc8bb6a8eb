package types

import "strings"

// DefaultCurrency is used when an invoice does not carry a currency code
const DefaultCurrency = "EUR"

// CURRENCY_CODES_SYMBOLS maps ISO currency codes to the symbol used in nl-NL output
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"EUR": "€",
	"USD": "US$",
	"GBP": "£",
	"AUD": "AU$",
	"CAD": "C$",
	"CHF": "CHF",
	"SEK": "SEK",
	"NOK": "NOK",
	"DKK": "DKK",
	"PLN": "PLN",
	"NZD": "NZ$",
	"HKD": "HK$",
	"SGD": "SGD",
	"JPY": "JP¥",
	"CNY": "CN¥",
	"INR": "₹",
	"BRL": "R$",
	"MXN": "MX$",
	"KRW": "₩",
	"TRY": "TRY",
	"ZAR": "ZAR",
}

// currencyMinorUnits holds the currencies whose minor unit is not 2 decimals
var currencyMinorUnits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"ISK": 0,
	"CLP": 0,
	"VND": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the upper cased code itself
func GetCurrencySymbol(code string) string {
	code = strings.ToUpper(code)
	if symbol, ok := CURRENCY_CODES_SYMBOLS[code]; ok {
		return symbol
	}
	return code
}

// GetCurrencyPrecision returns the number of minor unit digits of a currency
func GetCurrencyPrecision(code string) int32 {
	if p, ok := currencyMinorUnits[strings.ToUpper(code)]; ok {
		return p
	}
	return 2
}
