package domain

import (
	"fmt"
	"strings"
)

// TransactionID correlates one network exchange, or one compound operation,
// with the response delivered for it.
type TransactionID int64

// SyncTransactionID tags responses of blocking calls.
const SyncTransactionID TransactionID = -1

type TransactionState int

const (
	TransactionPending TransactionState = iota
	TransactionSuccess
	TransactionFailure
)

func (s TransactionState) String() string {
	switch s {
	case TransactionPending:
		return "pending"
	case TransactionSuccess:
		return "success"
	case TransactionFailure:
		return "failure"
	default:
		return fmt.Sprintf("TransactionState(%d)", int(s))
	}
}

type Method string

const (
	MethodGet      Method = "GET"
	MethodPost     Method = "POST"
	MethodPostForm Method = "POSTFORM"
	MethodPut      Method = "PUT"
	MethodDelete   Method = "DELETE"
)

// Normalize maps the empty method to GET and upper-cases anything else.
func (m Method) Normalize() Method {
	if m == "" {
		return MethodGet
	}
	return Method(strings.ToUpper(strings.TrimSpace(string(m))))
}

func (m Method) Valid() bool {
	switch m.Normalize() {
	case MethodGet, MethodPost, MethodPostForm, MethodPut, MethodDelete:
		return true
	default:
		return false
	}
}

// HTTPMethod is the verb sent on the wire. POSTFORM travels as POST.
func (m Method) HTTPMethod() string {
	if m.Normalize() == MethodPostForm {
		return string(MethodPost)
	}
	return string(m.Normalize())
}
