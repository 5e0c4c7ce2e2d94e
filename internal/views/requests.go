package views

// Request bodies deliberately carry no binding rules beyond JSON shape.
// Empty or malformed values are business preconditions (unknown user,
// invalid amount, ...) and must fail silently, not as a 400.

type LoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"` // numeric string, parsed permissively
}

type LoanRequest struct {
	Amount string `json:"amount"` // numeric string, parsed permissively
}

type CloseAccountRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}
