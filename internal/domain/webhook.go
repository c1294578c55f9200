package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// raw transaction notification from the indexing service
type TxNotification struct {
	Signature        string          `json:"signature"`
	Slot             uint64          `json:"slot"`
	Timestamp        int64           `json:"timestamp"` // unix seconds
	TokenTransfers   []TokenTransfer `json:"tokenTransfers"`
	Instructions     []TxInstruction `json:"instructions"`
	TransactionError json.RawMessage `json:"transactionError,omitempty"`
}

func (t *TxNotification) HasError() bool {
	return len(t.TransactionError) > 0 && string(t.TransactionError) != "null"
}

type TokenTransfer struct {
	FromUserAccount string          `json:"fromUserAccount"`
	ToUserAccount   string          `json:"toUserAccount"`
	Mint            string          `json:"mint"`
	TokenAmount     decimal.Decimal `json:"tokenAmount"` // decimal units, not smallest units
}

type TxInstruction struct {
	ProgramId string `json:"programId"`
	Data      string `json:"data"` // opaque, base58 or base64
}

// decoded memo, correlates a transfer with a payment session
type MemoPayload struct {
	SessionID string `json:"sessionId"`
	Amount    string `json:"amount"` // decimal string
	Token     string `json:"token"`  // mint address
	Timestamp int64  `json:"timestamp"`
	ProjectID string `json:"projectId"`
}
