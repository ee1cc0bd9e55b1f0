package domain

// Rarity represents the rarity tier of an item
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// ValidRarity reports whether s names a known rarity tier
func ValidRarity(s string) bool {
	switch Rarity(s) {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// ItemSnapshot is an immutable copy of an item taken at the moment it enters
// a listing. Later catalog edits never retroactively change a settled trade's
// recorded terms, and historical trades need no join back into the catalog.
type ItemSnapshot struct {
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	Rarity   Rarity `json:"rarity"`
	BaseCost int64  `json:"base_cost"`
	ImageRef string `json:"image_ref,omitempty"`
}
