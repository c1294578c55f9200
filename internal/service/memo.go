package service

import (
	"encoding/base64"
	"encoding/json"
	"unicode/utf8"

	"paygate/internal/domain"
	"paygate/pkg/utils"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var memoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// DecodeMemo scans the instruction list for the memo program and decodes its
// payload. Returns false on any failure; a transaction without a usable memo
// is skipped, never errored.
func DecodeMemo(instructions []domain.TxInstruction) (*domain.MemoPayload, bool) {
	for _, inst := range instructions {
		if inst.ProgramId != memoProgramID.String() {
			continue
		}

		raw, ok := decodeMemoData(inst.Data)
		if !ok {
			return nil, false
		}

		memo, err := utils.Unmarshal[domain.MemoPayload](raw)
		if err != nil {
			return nil, false
		}

		return memo, true
	}

	return nil, false
}

// base58 first, base64 as fallback
func decodeMemoData(data string) ([]byte, bool) {
	if raw, err := base58.Decode(data); err == nil && utf8.Valid(raw) && json.Valid(raw) {
		return raw, true
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil || !utf8.Valid(raw) {
		return nil, false
	}

	return raw, true
}
