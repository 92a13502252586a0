package response_models

import (
	"time"

	"github.com/google/uuid"
)

type AccountResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	LtcAddress       string     `json:"ltc_address"`
	CreatedAt        time.Time  `json:"created_at"`
	VerifiedAt       *time.Time `json:"verified_at"`
	IsVerified       bool       `json:"is_verified"`
	VerificationDays *int       `json:"verification_days"`
	VerificationInfo string     `json:"verification_info,omitempty"`
}

type VerificationEventResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	UserID    uuid.UUID `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

type TransactionResponse struct {
	TxID          string  `json:"txid"`
	Confirmed     string  `json:"confirmed,omitempty"`
	Value         int64   `json:"value"`
	Confirmations int64   `json:"confirmations"`
	BlockHeight   int64   `json:"block_height"`
	DoubleSpend   bool    `json:"double_spend"`
	Direction     string  `json:"direction"`
	AmountLTC     float64 `json:"amount_ltc"`
}

type AddressTransactionsResponse struct {
	Address            string                `json:"address"`
	TotalReceived      int64                 `json:"total_received"`
	TotalSent          int64                 `json:"total_sent"`
	Balance            int64                 `json:"balance"`
	FinalBalance       int64                 `json:"final_balance"`
	TxCount            int64                 `json:"tx_count"`
	UnconfirmedTxCount int64                 `json:"unconfirmed_tx_count"`
	Transactions       []TransactionResponse `json:"transactions"`
}
