package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ltctrack/internal/models/response_models"
	"ltctrack/pkg/utils"
)

const litoshiPerLTC = 1e8

// AddressLookup returns on-chain activity for a Litecoin address.
type AddressLookup interface {
	AddressTransactions(ctx context.Context, address string) (*response_models.AddressTransactionsResponse, error)
}

type blockCypherTxRef struct {
	TxHash        string `json:"tx_hash"`
	BlockHeight   int64  `json:"block_height"`
	TxInputN      int64  `json:"tx_input_n"`
	Value         int64  `json:"value"`
	Confirmations int64  `json:"confirmations"`
	Confirmed     string `json:"confirmed"`
	DoubleSpend   bool   `json:"double_spend"`
}

type blockCypherAddress struct {
	Address           string             `json:"address"`
	TotalReceived     int64              `json:"total_received"`
	TotalSent         int64              `json:"total_sent"`
	Balance           int64              `json:"balance"`
	FinalBalance      int64              `json:"final_balance"`
	NTx               int64              `json:"n_tx"`
	UnconfirmedNTx    int64              `json:"unconfirmed_n_tx"`
	TxRefs            []blockCypherTxRef `json:"txrefs"`
	UnconfirmedTxRefs []blockCypherTxRef `json:"unconfirmed_txrefs"`
}

// -------------- BlockCypher client ---------------

type BlockCypherClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewBlockCypherClient(baseURL string, timeout time.Duration) *BlockCypherClient {
	return &BlockCypherClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: baseURL,
	}
}

func (c *BlockCypherClient) AddressTransactions(ctx context.Context, address string) (*response_models.AddressTransactionsResponse, error) {
	u, err := url.Parse(c.BaseURL + "/v1/ltc/main/addrs/" + url.PathEscape(address))
	if err != nil {
		return nil, fmt.Errorf("blockcypher url: %w", err)
	}
	q := url.Values{}
	q.Set("limit", "50")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("blockcypher request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: blockcypher http error: %v", utils.ErrUpstreamError, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: blockcypher bad status: %s", utils.ErrUpstreamError, resp.Status)
	}

	var payload blockCypherAddress
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: blockcypher decode: %v", utils.ErrUpstreamError, err)
	}
	return toAddressTransactions(address, payload), nil
}

func toAddressTransactions(address string, p blockCypherAddress) *response_models.AddressTransactionsResponse {
	out := &response_models.AddressTransactionsResponse{
		Address:            address,
		TotalReceived:      p.TotalReceived,
		TotalSent:          p.TotalSent,
		Balance:            p.Balance,
		FinalBalance:       p.FinalBalance,
		TxCount:            p.NTx,
		UnconfirmedTxCount: p.UnconfirmedNTx,
		Transactions:       make([]response_models.TransactionResponse, 0, len(p.UnconfirmedTxRefs)+len(p.TxRefs)),
	}

	refs := append(append([]blockCypherTxRef{}, p.UnconfirmedTxRefs...), p.TxRefs...)
	for _, ref := range refs {
		// tx_input_n of -1 marks an output paying this address.
		direction := "sent"
		if ref.TxInputN < 0 {
			direction = "received"
		}
		out.Transactions = append(out.Transactions, response_models.TransactionResponse{
			TxID:          ref.TxHash,
			Confirmed:     ref.Confirmed,
			Value:         ref.Value,
			Confirmations: ref.Confirmations,
			BlockHeight:   ref.BlockHeight,
			DoubleSpend:   ref.DoubleSpend,
			Direction:     direction,
			AmountLTC:     float64(ref.Value) / litoshiPerLTC,
		})
	}
	return out
}
