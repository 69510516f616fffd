package items

// Rarity buckets jokers for wildcard matching ("AnyCommon", "AnyUncommon",
// "AnyRare", "AnyLegendary").
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityLegendary
)

// Jokers is the catalog of non-soul jokers available from shops and
// Buffoon packs, grouped by rarity. Soul jokers (below) are a disjoint set
// obtainable only via The Soul card.
var Jokers = map[Rarity][]string{
	RarityCommon: {
		"Joker", "GreedyJoker", "LustyJoker", "WrathfulJoker", "GluttonousJoker",
		"JollyJoker", "ZanyJoker", "MadJoker", "CrazyJoker", "DrollJoker",
		"SlyJoker", "WilyJoker", "CleverJoker", "DeviousJoker", "CraftyJoker",
		"Misprint", "RaisedFist", "ChaosTheClown", "ScaryFace", "AbstractJoker",
		"DelayedGratification", "GrosMichel", "EvenSteven", "OddTodd",
		"Scholar", "BusinessCard", "Supernova", "RideTheBus", "Egg", "Runner",
		"IceCream", "Splash", "BlueJoker", "FacelessJoker", "GreenJoker",
		"Superposition", "ToDoList", "Cavendish", "RedCard", "SquareJoker",
		"RiffRaff", "Photograph", "ReservedParking", "MailInRebate",
		"Hallucination", "FortuneTeller", "Juggler", "Drunkard", "GoldenJoker",
		"LuckyCat", "BaronJoker", "Bull", "DietCola", "TradingCard",
		"FlashCard", "Popcorn", "SpareTrousers", "AncientJoker", "Ramen",
		"Walkie Talkie", "Seltzer", "Castle", "SmileyFace", "Campfire",
		"GoldenTicket", "MrBones", "Acrobat", "SockAndBuskin", "Swashbuckler",
		"Troubadour", "Certificate", "SmearedJoker", "Throwback", "HangingChad",
		"RoughGem", "Bloodstone", "Arrowhead", "OnyxAgate", "GlassJoker",
		"Showman", "FlowerPot", "Blueprint", "WeeJoker", "MerryAndy",
		"OopsAll6s", "TheIdol", "SeeingDouble", "Matador", "Hit the Road",
		"TheDuo", "TheTrio", "TheFamily", "TheOrder", "TheTribe",
	},
	RarityUncommon: {
		"Stuntman", "InvisibleJoker", "Brainstorm", "Satellite", "ShootTheMoon",
		"DriversLicense", "CartomancerX", "Astronomer", "BurntJoker",
		"Bootstraps", "Canio2", "Hologram", "VagabondX", "Baseball Card",
		"Onyx", "Midas Mask", "Turtle Bean", "ErosionJoker", "Fibonacci",
		"SteelJoker", "Hack", "Pareidolia", "SpaceJoker", "EightBall",
	},
	RarityRare: {
		"DNA", "Vampire", "Shortcut", "Hologram2", "Vagabond", "Baron",
		"Obelisk", "MidasMask", "Seance", "Constellation", "HitTheRoad",
		"Cartomancer", "Burglar", "Blueprint2", "SixthSense", "Yorick2",
	},
	RarityLegendary: {
		"Canio", "Triboulet", "Yorick", "Chicot", "Perkeo",
	},
}

// SoulJokers is the subset of legendary jokers obtainable only via The
// Soul card from an Arcana or Spectral pack.
var SoulJokers = Jokers[RarityLegendary]

// Tarots, Planets, Spectrals, Vouchers, Tags, Bosses are the remaining
// item catalogs referenced by their respective clause categories.
var Tarots = []string{
	"TheFool", "TheMagician", "TheHighPriestess", "TheEmpress", "TheEmperor",
	"TheHierophant", "TheLovers", "TheChariot", "Justice", "TheHermit",
	"WheelOfFortune", "Strength", "TheHangedMan", "Death", "Temperance",
	"TheDevil", "TheTower", "TheStar", "TheMoon", "TheSun", "Judgement", "TheWorld",
}

var Planets = []string{
	"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus",
	"Neptune", "Pluto", "PlanetX", "Ceres", "Eris",
}

var Spectrals = []string{
	"Familiar", "Grim", "Incantation", "Talisman", "Aura", "Wraith", "Sigil",
	"Ouija", "Ectoplasm", "Immolate", "Ankh", "DejaVu", "Hex", "Trance",
	"Medium", "Cryptid", "TheSoul", "BlackHole",
}

var Vouchers = []string{
	"Overstock", "ClearanceSale", "Hone", "RerollSurplus", "CrystalBall",
	"Telescope", "Grabber", "Wasteful", "TarotMerchant", "PlanetMerchant",
	"SeedMoney", "Blank", "MagicTrick", "Hieroglyph", "DirectorsCut",
	"PaintBrush", "OverstockPlus", "Liquidation", "GlowUp", "RerollGlut",
	"Observatory", "NachoTong", "RecyclePlus", "TarotTycoon", "PlanetTycoon",
	"MoneyTree", "Antimatter", "Illusion", "Petroglyph", "Retcon", "Palette",
}

// VoucherUpgrades maps a base voucher to the upgraded voucher that replaces
// it from the *next* ante on once activated — the Hieroglyph-style effect the
// Voucher filter node has to honor.
var VoucherUpgrades = map[string]string{
	"Overstock":     "OverstockPlus",
	"ClearanceSale": "Liquidation",
	"Telescope":     "Observatory",
	"Hieroglyph":    "Petroglyph",
	"RerollSurplus": "RerollGlut",
	"TarotMerchant": "TarotTycoon",
	"PlanetMerchant": "PlanetTycoon",
}

var Tags = []string{
	"UncommonTag", "RareTag", "NegativeTag", "FoilTag", "HolographicTag",
	"PolychromeTag", "InvestmentTag", "VoucherTag", "BossTag", "StandardTag",
	"CharmTag", "MeteorTag", "BuffoonTag", "HandyTag", "GarbageTag",
	"EtherealTag", "CouponTag", "DoubleTag", "JuggleTag", "D6Tag",
	"TopUpTag", "SpeedTag", "OrbitalTag", "EconomyTag",
}

var Bosses = []string{
	"TheWall", "TheHouse", "TheMouth", "TheFish", "TheClub", "TheManacle",
	"TheTooth", "TheFlint", "ThePillar", "TheNeedle", "TheWater", "TheEye",
	"TheHead", "ThePlant", "TheSerpent", "TheOx", "AmberAcorn", "CeruleanBell",
	"CrimsonHeart", "VerdantLeaf", "VioletVessel",
}

func rarityOf(joker string) (Rarity, bool) {
	for r, list := range Jokers {
		for _, j := range list {
			if j == joker {
				return r, true
			}
		}
	}
	return 0, false
}
