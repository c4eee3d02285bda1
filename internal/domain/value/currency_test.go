package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tradebot/internal/domain/value"
)

func TestToScrapToRefined_RoundTrip(t *testing.T) {
	rq := require.New(t)

	for scrap := 0; scrap <= 10_000; scrap++ {
		rq.Equal(scrap, value.ToScrap(value.ToRefined(scrap)), "scrap=%d", scrap)
	}
}

func TestToRefined(t *testing.T) {
	tests := []struct {
		name    string
		scrap   int
		refined float64
	}{
		{name: "zero", scrap: 0, refined: 0},
		{name: "one scrap", scrap: 1, refined: 0.11},
		{name: "one reclaimed", scrap: 3, refined: 0.33},
		{name: "one refined", scrap: 9, refined: 1},
		{name: "mixed", scrap: 25, refined: 2.77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.refined, value.ToRefined(tt.scrap), 1e-9)
		})
	}
}

func TestCurrencyToValueFromValue(t *testing.T) {
	rq := require.New(t)

	const keyPrice = 450 // 50 ref

	c := value.Currency{Keys: 2, Metal: 2.33}
	total := c.ToValue(keyPrice)
	rq.Equal(2*450+21, total)

	back := value.FromValue(total, keyPrice)
	rq.Equal(c, back)
}

func TestFromValue_ZeroKeyPrice(t *testing.T) {
	rq := require.New(t)

	c := value.FromValue(25, 0)
	rq.Equal(0, c.Keys)
	rq.InDelta(2.77, c.Metal, 1e-9)
}

func TestCurrencyString(t *testing.T) {
	tests := []struct {
		name     string
		currency value.Currency
		want     string
	}{
		{name: "metal only", currency: value.Currency{Metal: 2.33}, want: "2.33 ref"},
		{name: "one key", currency: value.Currency{Keys: 1}, want: "1 key"},
		{name: "keys only", currency: value.Currency{Keys: 3}, want: "3 keys"},
		{name: "one key and metal", currency: value.Currency{Keys: 1, Metal: 0.11}, want: "1 key, 0.11 ref"},
		{name: "keys and metal", currency: value.Currency{Keys: 2, Metal: 5}, want: "2 keys, 5 ref"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.currency.String())
		})
	}
}

func TestPureScrap(t *testing.T) {
	rq := require.New(t)

	for sku, want := range map[string]int{
		value.SKUScrap: 1,
		value.SKURec:   3,
		value.SKURef:   9,
	} {
		got, ok := value.PureScrap(sku)
		rq.True(ok)
		rq.Equal(want, got)
	}

	_, ok := value.PureScrap(value.SKUKey)
	rq.False(ok)
}

func TestHasGiftWord(t *testing.T) {
	rq := require.New(t)

	rq.True(value.HasGiftWord("Here is a GIFT for you"))
	rq.True(value.HasGiftWord("donation for the cause"))
	rq.False(value.HasGiftWord("trade me please"))
	rq.False(value.HasGiftWord(""))
}

func TestIsCraftWeapon(t *testing.T) {
	rq := require.New(t)

	rq.True(value.IsCraftWeapon("45;6"))
	rq.True(value.IsCraftWeapon("939;6"))
	rq.True(value.IsCraftWeapon("45;6;uncraftable"))
	rq.False(value.IsCraftWeapon(value.SKUKey))
}

func TestHasGiftWord_Substrings(t *testing.T) {
	rq := require.New(t)

	rq.True(value.HasGiftWord("thanks, have a good one"))
	rq.True(value.HasGiftWord("+rep fast trader"))
	rq.False(value.HasGiftWord("standard offer"))
}
