package pkg

const (
	HeaderTraceId      string = "X-Trace-Id"
	HeaderSessionToken string = "X-Session-Token"
)

const (
	TraceId   string = "trace_id"
	SessionId string = "session_id"
)

type MovementType string

const (
	MovementDeposit    MovementType = "deposit"
	MovementWithdrawal MovementType = "withdrawal"
)

// MovementTypeOf classifies a signed movement amount.
func MovementTypeOf(amount float64) MovementType {
	if amount > 0 {
		return MovementDeposit
	}
	return MovementWithdrawal
}
