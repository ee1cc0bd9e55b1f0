package market

// Log message constants
const (
	LogMsgSnapshotRefreshed = "Market snapshot refreshed"
)

// ValidSort reports whether s names a supported sort order. The empty
// string is valid and means newest-first.
func ValidSort(s string) bool {
	switch s {
	case "", SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}
