package service

import (
	"encoding/base64"
	"testing"

	"paygate/internal/domain"
	"paygate/pkg/utils"

	"github.com/mr-tron/base58"
)

const memoProgram = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"

func memoJSON(sessionID string) []byte {
	return utils.MustMarshal(domain.MemoPayload{
		SessionID: sessionID,
		Amount:    "10.5",
		Token:     "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Timestamp: 1717000000,
		ProjectID: "proj_1",
	})
}

func TestDecodeMemoBase58(t *testing.T) {
	instructions := []domain.TxInstruction{
		{ProgramId: "11111111111111111111111111111111", Data: "irrelevant"},
		{ProgramId: memoProgram, Data: base58.Encode(memoJSON("sess_abc"))},
	}

	memo, ok := DecodeMemo(instructions)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if memo.SessionID != "sess_abc" {
		t.Errorf("session id = %q", memo.SessionID)
	}
	if memo.Amount != "10.5" {
		t.Errorf("amount = %q", memo.Amount)
	}
}

func TestDecodeMemoBase64Fallback(t *testing.T) {
	instructions := []domain.TxInstruction{
		{ProgramId: memoProgram, Data: base64.StdEncoding.EncodeToString(memoJSON("sess_b64"))},
	}

	memo, ok := DecodeMemo(instructions)
	if !ok {
		t.Fatal("expected base64 fallback to succeed")
	}
	if memo.SessionID != "sess_b64" {
		t.Errorf("session id = %q", memo.SessionID)
	}
}

func TestDecodeMemoNoMemoInstruction(t *testing.T) {
	instructions := []domain.TxInstruction{
		{ProgramId: "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", Data: "data"},
	}

	if _, ok := DecodeMemo(instructions); ok {
		t.Fatal("expected no memo")
	}
}

func TestDecodeMemoGarbageData(t *testing.T) {
	instructions := []domain.TxInstruction{
		{ProgramId: memoProgram, Data: "!!!not-any-encoding!!!"},
	}

	if _, ok := DecodeMemo(instructions); ok {
		t.Fatal("expected decode failure")
	}
}

func TestDecodeMemoFirstMatchWins(t *testing.T) {
	// decode failure on the first memo instruction is final, a later valid
	// one is not consulted
	instructions := []domain.TxInstruction{
		{ProgramId: memoProgram, Data: "!!!broken!!!"},
		{ProgramId: memoProgram, Data: base58.Encode(memoJSON("sess_later"))},
	}

	if _, ok := DecodeMemo(instructions); ok {
		t.Fatal("expected failure from first memo instruction")
	}
}

func TestDecodeMemoEmptyInstructions(t *testing.T) {
	if _, ok := DecodeMemo(nil); ok {
		t.Fatal("expected no memo")
	}
}
