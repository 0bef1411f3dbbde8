package listing

type CreateListingRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Location      string  `json:"location" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
}

// UpdateListingRequest uses pointers so PATCH can leave fields untouched.
// The host is never client-settable.
type UpdateListingRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"`
	PricePerNight *float64 `json:"price_per_night"`
}
