package domain

// Identity is the pre-authenticated caller identity supplied by the identity
// collaborator on every request. The exchange performs no authentication of
// its own; it trusts these values and snapshots DisplayName into listings
// and offers it creates.
type Identity struct {
	AccountID   string
	DisplayName string
}
