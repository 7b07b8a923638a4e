package domain

// User is a registered member of the marketplace. Users appear both as item
// owners and as bookers; nothing distinguishes the two roles at the account
// level.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Equal reports identity equality. Two users are the same entity when their
// identifiers match; an unsaved user (zero ID) is never equal to anything.
func (u User) Equal(other User) bool {
	if u.ID == 0 || other.ID == 0 {
		return false
	}
	return u.ID == other.ID
}
