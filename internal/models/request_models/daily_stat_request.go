package request_models

// DailyStatRequest is the body of both create and upsert. Date is YYYY-MM-DD
// or RFC 3339; it is reduced to its UTC calendar day.
type DailyStatRequest struct {
	AccountID string   `json:"account_id" binding:"required,uuid"`
	Date      string   `json:"date" binding:"required"`
	Earned    *float64 `json:"earned" binding:"required,gte=0"`
	Pending   *float64 `json:"pending" binding:"required,gte=0"`
}

type UpdateDailyStatRequest struct {
	AccountID *string  `json:"account_id" binding:"omitempty,uuid"`
	Date      *string  `json:"date"`
	Earned    *float64 `json:"earned" binding:"omitempty,gte=0"`
	Pending   *float64 `json:"pending" binding:"omitempty,gte=0"`
}

// StatsRangeQuery is bound from the query string of aggregate endpoints.
type StatsRangeQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	WithPrice bool   `form:"with_price"`
}
