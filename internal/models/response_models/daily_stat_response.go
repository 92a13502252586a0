package response_models

import (
	"time"

	"github.com/google/uuid"
	"ltctrack/pkg/utils"
)

type DailyStatResponse struct {
	ID          uuid.UUID  `json:"id"`
	AccountID   uuid.UUID  `json:"account_id"`
	AccountName string     `json:"account_name,omitempty"`
	LtcAddress  string     `json:"ltc_address,omitempty"`
	Date        utils.Day  `json:"date"`
	Earned      float64    `json:"earned"`
	Pending     float64    `json:"pending"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type DailyTotal struct {
	Date    utils.Day `json:"date"`
	Earned  float64   `json:"earned"`
	Pending float64   `json:"pending"`
	Total   float64   `json:"total"`
	// Only filled when prices were requested and known for the day.
	PriceUSDT *float64 `json:"price_usdt,omitempty"`
	TotalUSDT *float64 `json:"total_usdt,omitempty"`
}

type AccountStatsResponse struct {
	AccountsCount int          `json:"accounts_count"`
	DaysCount     int          `json:"days_count"`
	Data          []DailyTotal `json:"data"`
}
