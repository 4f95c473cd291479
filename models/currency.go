package models

// SupportedCurrencies maps every currency the store accepts to its exchange
// rate relative to USD. Rates are applied at order-creation time and the rate
// in effect is persisted on the order.
var SupportedCurrencies = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"AED": 3.67,
	"SAR": 3.75,
	"QAR": 3.64,
	"KWD": 0.31,
	"BHD": 0.38,
	"OMR": 0.38,
	"JOD": 0.71,
	"LBP": 89500,
	"EGP": 48.6,
	"IQD": 1310,
	"ILS": 3.72,
}

// DefaultCurrency is the hard fallback when neither the request nor the store
// settings name a currency.
const DefaultCurrency = "USD"

func IsSupportedCurrency(code string) bool {
	_, ok := SupportedCurrencies[code]
	return ok
}

// CurrencyExchangeRate returns the exchange rate for a supported code, or 0
// for an unsupported one.
func CurrencyExchangeRate(code string) float64 {
	return SupportedCurrencies[code]
}
