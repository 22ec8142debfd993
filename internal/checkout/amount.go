package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies Stripe charges in whole units.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {},
	"JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
	"PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// MinorUnits converts an amount into the smallest unit of currency, rounding
// half up. Amounts are expected to be positive.
func MinorUnits(amount decimal.Decimal, currency string) int64 {
	exp := int32(2)
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]; ok {
		exp = 0
	}

	return amount.Mul(decimal.New(1, exp)).Round(0).IntPart()
}
