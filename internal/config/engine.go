package config

// Engine carries every decision-pipeline toggle. Read-only after Load.
type Engine struct {
	ManualReview            bool `env:"ENGINE_MANUAL_REVIEW" envDefault:"true"`
	CraftWeaponAsCurrency   bool `env:"ENGINE_CRAFT_WEAPON_AS_CURRENCY" envDefault:"true"`
	GivePriceToInvalidItems bool `env:"ENGINE_GIVE_PRICE_TO_INVALID_ITEMS"`
	AllowOverpay            bool `env:"ENGINE_ALLOW_OVERPAY" envDefault:"true"`

	// Accept-despite-flags toggles for the final resolution step.
	AcceptInvalidItemsOverpay bool `env:"ENGINE_ACCEPT_INVALID_ITEMS_OVERPAY" envDefault:"true"`
	AcceptOverstockedOverpay  bool `env:"ENGINE_ACCEPT_OVERSTOCKED_OVERPAY" envDefault:"true"`

	AutoDeclineInvalidValue bool `env:"ENGINE_AUTO_DECLINE_INVALID_VALUE" envDefault:"true"`

	// Autokeys gates the key-listing re-sync on repeated drift.
	Autokeys bool `env:"ENGINE_AUTOKEYS"`

	DupeCheckEnabled     bool `env:"ENGINE_DUPE_CHECK_ENABLED" envDefault:"true"`
	MinimumKeysDupeCheck int  `env:"ENGINE_MINIMUM_KEYS_DUPE_CHECK" envDefault:"10"`
	DeclineDupes         bool `env:"ENGINE_DECLINE_DUPES" envDefault:"true"`

	// ExceptionSKUs are substring-matched against offer SKUs; a value
	// shortfall below ExceptionValueRef is forgiven when one matches.
	ExceptionSKUs     []string `env:"ENGINE_EXCEPTION_SKUS" envSeparator:","`
	ExceptionValueRef float64  `env:"ENGINE_EXCEPTION_VALUE_REF"`

	CheckUsesDueling    bool `env:"ENGINE_CHECK_USES_DUELING" envDefault:"true"`
	CheckUsesNoiseMaker bool `env:"ENGINE_CHECK_USES_NOISE_MAKER" envDefault:"true"`

	CraftMetal            bool `env:"ENGINE_CRAFT_METAL" envDefault:"true"`
	CraftDuplicateWeapons bool `env:"ENGINE_CRAFT_DUPLICATE_WEAPONS" envDefault:"true"`
	SortInventory         bool `env:"ENGINE_SORT_INVENTORY" envDefault:"true"`
	ShowOnlyMetal         bool `env:"ENGINE_SHOW_ONLY_METAL" envDefault:"true"`

	Admins []string `env:"ENGINE_ADMINS" envSeparator:"," validate:"dive,numeric"`
	Groups []string `env:"ENGINE_GROUPS" envSeparator:"," validate:"dive,numeric"`

	CustomSuccessMessage  string `env:"ENGINE_CUSTOM_SUCCESS_MESSAGE"`
	CustomDeclinedMessage string `env:"ENGINE_CUSTOM_DECLINED_MESSAGE"`
}

func (e Engine) IsAdmin(partnerID string) bool {
	for _, admin := range e.Admins {
		if admin == partnerID {
			return true
		}
	}

	return false
}
