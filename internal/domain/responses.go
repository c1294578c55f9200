package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// outbound webhook body sent to merchant endpoints
type WebhookEventPayload struct {
	Id        string           `json:"id"`
	Type      string           `json:"type"`
	CreatedAt string           `json:"createdAt"` // ISO-8601
	Data      WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	SessionID            string                `json:"sessionId"`
	PaymentID            string                `json:"paymentId"`
	Amount               decimal.Decimal       `json:"amount"` // decimal units
	Currency             string                `json:"currency"`
	Network              string                `json:"network"`
	Status               string                `json:"status"`
	Metadata             json.RawMessage       `json:"metadata"`
	WalletAddress        string                `json:"walletAddress"`
	TokenMint            string                `json:"tokenMint"`
	TransactionSignature string                `json:"transactionSignature"`
	BlockNumber          uint64                `json:"blockNumber"`
	ConfirmedAt          string                `json:"confirmedAt"`
	Products             []WebhookEventProduct `json:"products"`
}

type WebhookEventProduct struct {
	Id       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"` // decimal units
	Metadata json.RawMessage `json:"metadata"`
}

// BuildEventPayload flattens a confirmed event into the wire shape.
func BuildEventPayload(event *Events, network Network) WebhookEventPayload {
	p := &event.Payment

	var blockNumber uint64
	if p.BlockNumber != nil {
		blockNumber = *p.BlockNumber
	}

	var txSig string
	if p.TxHash != nil {
		txSig = *p.TxHash
	}

	var confirmedAt string
	if p.ConfirmedAt != nil {
		confirmedAt = p.ConfirmedAt.UTC().Format(time.RFC3339)
	}

	products := make([]WebhookEventProduct, 0, len(p.Products))
	for _, product := range p.Products {
		products = append(products, WebhookEventProduct{
			Id:       uintToStr(product.ID),
			Name:     product.Name,
			Price:    decimal.NewFromInt(product.Price).Div(decimal.NewFromInt(MICRO_UNITS)),
			Metadata: rawOrNull(product.Metadata),
		})
	}

	return WebhookEventPayload{
		Id:        uintToStr(event.ID),
		Type:      event.Type,
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
		Data: WebhookEventData{
			SessionID:            event.SessionID,
			PaymentID:            uintToStr(p.ID),
			Amount:               p.AmountDecimal(),
			Currency:             p.Currency.ToString(),
			Network:              network.ToString(),
			Status:               p.Status.ToString(),
			Metadata:             rawOrNull(event.Metadata),
			WalletAddress:        p.Recipient,
			TokenMint:            p.Token.Mint,
			TransactionSignature: txSig,
			BlockNumber:          blockNumber,
			ConfirmedAt:          confirmedAt,
			Products:             products,
		},
	}
}

func uintToStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func rawOrNull(s string) json.RawMessage {
	if !json.Valid([]byte(s)) {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
