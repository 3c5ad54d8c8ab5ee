package model

// Direction represents the side of a trade signal.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Signal is a fully sized trade signal for one pair.
type Signal struct {
	Pair       string    `json:"pair"`
	Direction  Direction `json:"direction"`
	Entry      float64   `json:"entry"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Range      float64   `json:"range"` // latest high-low span, floored — volatility proxy
	RiskReward float64   `json:"risk_reward"`
}

// Outcome is a simulated result applied to the account balance.
type Outcome struct {
	Pair   string  `json:"pair"`
	Won    bool    `json:"won"`
	Risk   float64 `json:"risk"`
	Reward float64 `json:"reward"`
}
