package booking

type CreateBookingRequest struct {
	ListingID int64  `json:"listing_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	// TotalPrice is accepted so clients sending it don't fail to bind,
	// but the value is discarded; the server computes the price.
	TotalPrice *float64 `json:"total_price"`
	Status     string   `json:"status"`
}

type UpdateBookingRequest struct {
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Status     *string  `json:"status"`
	TotalPrice *float64 `json:"total_price"` // discarded, see above
}
