package domain

// Item is a listing offered for rent by its owner. The owner reference is set
// at creation and never changes. RequestID links the item back to the request
// it was listed in response to, when there is one.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Equal reports identity equality; unsaved items compare unequal.
func (i Item) Equal(other Item) bool {
	if i.ID == 0 || other.ID == 0 {
		return false
	}
	return i.ID == other.ID
}
