package domain

// Response is the envelope every logical operation resolves to. Build it with
// NewPending, NewSuccess or NewFailure; it is not modified afterwards.
type Response struct {
	TransactionID TransactionID
	State         TransactionState
	Payload       any
	Err           error
	RawBody       []byte
}

func NewPending(id TransactionID) Response {
	return Response{TransactionID: id, State: TransactionPending}
}

// NewSuccess always carries a raw body, empty when the server sent none.
func NewSuccess(id TransactionID, payload any, raw []byte) Response {
	if raw == nil {
		raw = []byte{}
	}
	return Response{TransactionID: id, State: TransactionSuccess, Payload: payload, RawBody: raw}
}

// NewFailure keeps raw only when bytes were actually received.
func NewFailure(id TransactionID, err error, raw []byte) Response {
	if len(raw) == 0 {
		raw = nil
	}
	return Response{TransactionID: id, State: TransactionFailure, Err: err, RawBody: raw}
}

func (r Response) Pending() bool   { return r.State == TransactionPending }
func (r Response) Succeeded() bool { return r.State == TransactionSuccess }
func (r Response) Failed() bool    { return r.State == TransactionFailure }

func (r Response) HasRawBody() bool { return r.RawBody != nil }

func (r Response) Raw() string { return string(r.RawBody) }

func (r Response) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// WithTransactionID rewrites the correlation id, used when an internal step id
// is reported under the outward id of a compound operation.
func (r Response) WithTransactionID(id TransactionID) Response {
	r.TransactionID = id
	return r
}

func PayloadAs[T any](r Response) (T, bool) {
	value, ok := r.Payload.(T)
	return value, ok
}
