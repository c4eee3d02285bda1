package value

import "strings"

// giftWords are matched as substrings of the offer message, so "goo"
// also catches "good" and "rep" catches "+rep".
var giftWords = []string{
	"gift",
	"donat",
	"tip",
	"tribute",
	"souvenir",
	"favor",
	"giveaway",
	"bonus",
	"grant",
	"bounty",
	"present",
	"contribution",
	"award",
	"nice",
	"happy",
	"thank",
	"goo",
	"awesome",
	"rep",
	"joy",
	"cute",
}

// HasGiftWord reports whether the lowercased message contains any of
// the known gift keywords.
func HasGiftWord(message string) bool {
	lowered := strings.ToLower(message)
	for _, word := range giftWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}

// NoiseMakerNames lists the display-name prefixes of the limited-use
// noise maker family (25 printed uses when unused).
var NoiseMakerNames = []string{
	"Noise Maker - Black Cat",
	"Noise Maker - Gremlin",
	"Noise Maker - Werewolf",
	"Noise Maker - Witch",
	"Noise Maker - Banshee",
	"Noise Maker - Crazy Laugh",
	"Noise Maker - Stabby",
	"Noise Maker - Bell",
	"Noise Maker - Gong",
	"Noise Maker - Koto",
	"Noise Maker - Fireworks",
	"Noise Maker - Vuvuzela",
}

var NoiseMakerSKUs = []string{
	"280;6", "280;6;uncraftable",
	"281;6", "281;6;uncraftable",
	"282;6", "282;6;uncraftable",
	"283;6", "283;6;uncraftable",
	"284;6", "284;6;uncraftable",
	"286;6", "286;6;uncraftable",
	"288;6", "288;6;uncraftable",
	"362;6", "362;6;uncraftable",
	"364;6", "364;6;uncraftable",
	"365;6", "365;6;uncraftable", "365;1",
	"493;6", "493;6;uncraftable",
	"542;6", "542;6;uncraftable", "542;1",
}

const (
	DuelingMiniGame = "Dueling Mini-Game"
	SKUDueling      = "241;6"

	DuelingUsesText    = "This is a limited use item. Uses: 5"
	NoiseMakerUsesText = "This is a limited use item. Uses: 25"
)

// CraftWeapons lists every craftable stock-quality weapon SKU, grouped by class.
var CraftWeapons = []string{
	// Scout
	"45;6", "220;6", "448;6", "772;6", "1103;6",
	"46;6", "163;6", "222;6", "449;6", "773;6", "812;6",
	"44;6", "221;6", "317;6", "325;6", "349;6", "355;6", "450;6", "648;6",
	// Soldier
	"127;6", "228;6", "237;6", "414;6", "441;6", "513;6", "730;6", "1104;6",
	"129;6", "133;6", "226;6", "354;6", "415;6", "442;6", "1101;6", "1153;6", "444;6",
	"128;6", "154;6", "357;6", "416;6", "447;6", "775;6",
	// Pyro
	"40;6", "215;6", "594;6", "741;6", "1178;6",
	"39;6", "351;6", "595;6", "740;6", "1179;6", "1180;6",
	"38;6", "153;6", "214;6", "326;6", "348;6", "457;6", "593;6", "739;6", "813;6", "1181;6",
	// Demoman
	"308;6", "405;6", "608;6", "996;6", "1151;6",
	"130;6", "131;6", "265;6", "406;6", "1099;6", "1150;6",
	"132;6", "172;6", "307;6", "327;6", "404;6", "482;6", "609;6",
	// Heavy
	"41;6", "312;6", "424;6", "811;6",
	"42;6", "159;6", "311;6", "425;6", "1190;6",
	"43;6", "239;6", "310;6", "331;6", "426;6", "656;6",
	// Engineer
	"141;6", "527;6", "588;6", "997;6",
	"140;6", "528;6",
	"142;6", "155;6", "329;6", "589;6",
	// Medic
	"36;6", "305;6", "412;6",
	"35;6", "411;6", "998;6",
	"37;6", "173;6", "304;6", "413;6",
	// Sniper
	"56;6", "230;6", "402;6", "526;6", "752;6", "1092;6", "1098;6",
	"57;6", "58;6", "231;6", "642;6", "751;6",
	"171;6", "232;6", "401;6",
	// Spy
	"61;6", "224;6", "460;6", "525;6",
	"225;6", "356;6", "461;6", "649;6", "810;6",
	"60;6", "59;6",
	// All class
	"939;6",
}

var craftWeaponSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(CraftWeapons))
	for _, sku := range CraftWeapons {
		set[sku] = struct{}{}
	}

	return set
}() //nolint:gochecknoglobals // static table

// IsCraftWeapon reports whether the SKU is a stock-quality weapon,
// craftable or not. Both variants substitute as half-scrap currency.
func IsCraftWeapon(sku string) bool {
	_, ok := craftWeaponSet[strings.TrimSuffix(sku, ";uncraftable")]
	return ok
}
