package domain

import "fmt"

const (
	ErrMsgOK                = "OK"
	ErrMsgUnauthorized      = "Unauthorized"
	ErrMsgInvalidAuthHeader = "Invalid auth header found"

	ErrMsgInternalServerError = "internal server error"
	ErrMsgBadRequest          = "bad request"
)

var (
	ErrInternalServerError = fmt.Errorf(ErrMsgInternalServerError)

	// skip conditions inside the batch loop, expected and frequent
	ErrTxFailed         = fmt.Errorf("transaction carries an error marker")
	ErrNoTransfers      = fmt.Errorf("no token transfers")
	ErrNoMemo           = fmt.Errorf("no memo")
	ErrAlreadyProcessed = fmt.Errorf("transaction already processed")
	ErrEventNotFound    = fmt.Errorf("no event for session id")
	ErrAmountMismatch   = fmt.Errorf("amount outside tolerance")

	// raised when a just confirmed payment cannot be re-read for fan-out
	ErrEventReload = fmt.Errorf("event reload after confirmation failed")

	ErrEndpointNotFound = fmt.Errorf("endpoint not found")
	ErrEndpointInactive = fmt.Errorf("endpoint is not active")
)
