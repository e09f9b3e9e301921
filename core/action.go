package core

// Action ledger operation kind
type Action int

const (
	_ Action = iota
	ActionDeposit
	ActionWithdraw
	ActionBorrow
	ActionRepay
	ActionLiquidate
	ActionSetRate
)

var actionNames = map[Action]string{
	ActionDeposit:   "deposit",
	ActionWithdraw:  "withdraw",
	ActionBorrow:    "borrow",
	ActionRepay:     "repay",
	ActionLiquidate: "liquidate",
	ActionSetRate:   "set_rate",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}

// ParseAction inverse of String
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return a, true
		}
	}

	return 0, false
}

// ByUser actions requested by a participant for an amount
func (a Action) ByUser() bool {
	return a != ActionSetRate
}
