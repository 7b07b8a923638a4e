package dto

import "time"

// CreateRequestRequest payload for asking for an unlisted item.
type CreateRequestRequest struct {
	Description string `json:"description" validate:"required"`
}

// RequestResponse is the wire view of an item request, decorated with the
// items listed in response to it.
type RequestResponse struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	Items       []ItemShortResponse `json:"items"`
}
