package models

// ExitReason classifies how a trade closed. The streak and profit-factor
// logic branches exhaustively on it, so it is a closed enumeration rather
// than a free-form string.
type ExitReason string

const (
	ExitTakeProfit ExitReason = "TP"
	ExitBreakEven  ExitReason = "BE"
	ExitStopLoss   ExitReason = "SL"
	ExitManual     ExitReason = "Manual"
)

// ParseExitReason maps raw input onto the enumeration. Unknown values fall
// back to Manual so imported rows never carry an unclassifiable reason.
func ParseExitReason(raw string) ExitReason {
	switch ExitReason(raw) {
	case ExitTakeProfit, ExitBreakEven, ExitStopLoss, ExitManual:
		return ExitReason(raw)
	default:
		return ExitManual
	}
}

// Valid reports whether r is one of the four known reasons.
func (r ExitReason) Valid() bool {
	switch r {
	case ExitTakeProfit, ExitBreakEven, ExitStopLoss, ExitManual:
		return true
	}
	return false
}
