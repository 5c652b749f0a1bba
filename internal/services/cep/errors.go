package cep

import "errors"

// Client errors
var (
	// ErrTransferNotFound is returned by Validate when Banxico has no record of the transfer.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrMaxRequests is returned when Banxico refuses further queries from this client.
	ErrMaxRequests   = errors.New("maximum number of CEP queries exceeded")
	ErrUnexpectedCEP = errors.New("unexpected CEP response")
)
