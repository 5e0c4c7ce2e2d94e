package views

// AccountView carries everything the presentation boundary needs after an
// action: the movement list in the session's current order plus the fully
// recomputed derived summary.
type AccountView struct {
	Welcome   string    `json:"welcome"`
	Username  string    `json:"username"`
	Movements []float64 `json:"movements"`
	Balance   float64   `json:"balance"`
	Income    float64   `json:"income"`
	Expense   float64   `json:"expense"`
	Interest  float64   `json:"interest"`
	Sorted    bool      `json:"sorted"`
}
