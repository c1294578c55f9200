package domain

type Currency uint8

const (
	CURRENCY_UNKNOWN Currency = iota // only for init / unresolved
	CURRENCY_USDC
	CURRENCY_USDT
)

var Currencies = [...]string{"unknown", "USDC", "USDT"}

func (c Currency) ToString() string {
	return Currencies[c]
}

func (c Currency) IsUnknown() bool {
	return c == CURRENCY_UNKNOWN
}

func StrToCurrency(s string) Currency {
	for i, currencyName := range Currencies {
		if s == currencyName {
			return Currency(i)
		}
	}
	return CURRENCY_UNKNOWN
}
