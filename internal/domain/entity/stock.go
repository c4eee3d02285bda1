package entity

// CurrencyCounts is the current pure-currency stock by denomination.
type CurrencyCounts struct {
	Keys      int `json:"keys"`
	Refined   int `json:"refined"`
	Reclaimed int `json:"reclaimed"`
	Scrap     int `json:"scrap"`
}

// MetalScrap is the scrap-equivalent of the metal denominations only.
func (c CurrencyCounts) MetalScrap() int {
	return c.Scrap + c.Reclaimed*3 + c.Refined*9
}
