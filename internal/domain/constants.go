package domain

// Transaction limits
const (
	// MaxTradePrice caps asking prices and offer amounts. Keeps arithmetic
	// comfortably inside int64 even when summed across a whole account.
	MaxTradePrice = int64(1_000_000_000)
)
