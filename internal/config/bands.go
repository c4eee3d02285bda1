package config

// Bands configure the metal supply maintainer. Minimums are in units
// of the denomination itself, the threshold widens each band's top.
type Bands struct {
	MinScrap     int `env:"METAL_MINIMUM_SCRAP" envDefault:"9" validate:"min=0"`
	MinReclaimed int `env:"METAL_MINIMUM_RECLAIMED" envDefault:"9" validate:"min=0"`
	CombineHold  int `env:"METAL_THRESHOLD" envDefault:"9" validate:"min=0"`
}
