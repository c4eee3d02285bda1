package value

import (
	"math"
	"strconv"
)

const (
	// scrap-equivalents per denomination
	ScrapPerReclaimed = 3
	ScrapPerRefined   = 9
)

// Currency is a value expressed in whole keys plus refined metal.
type Currency struct {
	Keys  int     `json:"keys"`
	Metal float64 `json:"metal"`
}

// ToScrap converts a refined metal value to whole scrap units.
func ToScrap(refined float64) int {
	return int(math.Round(refined * ScrapPerRefined))
}

// ToRefined converts scrap units back to a refined value,
// truncated to two decimal places.
func ToRefined(scrap int) float64 {
	return math.Trunc(float64(scrap)/ScrapPerRefined*100) / 100 //nolint:mnd // two decimals
}

// ToValue returns the total scrap-equivalent of the currency given
// the current key price in scrap.
func (c Currency) ToValue(keyPriceScrap int) int {
	return c.Keys*keyPriceScrap + ToScrap(c.Metal)
}

// FromValue decomposes a scrap-equivalent into keys plus metal.
// Whole keys are taken first (truncating), the remainder becomes metal.
func FromValue(scrap int, keyPriceScrap int) Currency {
	keys := 0
	if keyPriceScrap > 0 {
		keys = scrap / keyPriceScrap
	}

	return Currency{
		Keys:  keys,
		Metal: ToRefined(scrap - keys*keyPriceScrap),
	}
}

func (c Currency) IsZero() bool {
	return c.Keys == 0 && c.Metal == 0
}

func (c Currency) String() string {
	metal := strconv.FormatFloat(c.Metal, 'f', -1, 64) + " ref"

	switch {
	case c.Keys == 0:
		return metal
	case c.Keys == 1 && c.Metal == 0:
		return "1 key"
	case c.Metal == 0:
		return strconv.Itoa(c.Keys) + " keys"
	case c.Keys == 1:
		return "1 key, " + metal
	default:
		return strconv.Itoa(c.Keys) + " keys, " + metal
	}
}
