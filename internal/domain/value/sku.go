package value

// Fixed currency SKUs.
const (
	SKUScrap     = "5000;6"
	SKURec       = "5001;6"
	SKURef       = "5002;6"
	SKUKey       = "5021;6"
	SKUCraftHats = "-100;6" // random craft hat placeholder, never priced
)

// Scrap-equivalent of a half-scrap unit, used for craft weapons
// substituted as currency. Kept as a float because half a scrap is
// not representable in integer scrap units.
const CraftWeaponScrap = 0.5

// PureScrap returns the fixed scrap-equivalent of a metal SKU,
// or 0 with ok=false when the SKU is not pure metal.
func PureScrap(sku string) (int, bool) {
	switch sku {
	case SKUScrap:
		return 1, true
	case SKURec:
		return ScrapPerReclaimed, true
	case SKURef:
		return ScrapPerRefined, true
	default:
		return 0, false
	}
}

func IsPureMetal(sku string) bool {
	_, ok := PureScrap(sku)
	return ok
}

func IsCurrency(sku string) bool {
	return sku == SKUKey || IsPureMetal(sku)
}
