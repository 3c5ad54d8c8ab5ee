// Package format renders domain structs into the outbound message texts.
// Pure string building — no I/O and no business logic.
package format

import (
	"fmt"
	"strings"
	"time"

	"fxsignal/internal/markethours"
	"fxsignal/internal/model"
)

// StatusInfo is the snapshot rendered for the /status reply.
type StatusInfo struct {
	Balance     float64
	RiskPercent float64
	Lot         string
	Leverage    int
	Pairs       []string
}

func stamp(t time.Time) string {
	return fmt.Sprintf("🕒 %s (Asia/Dhaka)", markethours.Stamp(t))
}

// RRText renders the risk:reward ratio as integer ratio text, e.g. "2:1".
func RRText(rr float64) string {
	return fmt.Sprintf("%d:1", int(rr))
}

// Signal renders a trade signal announcement.
func Signal(sig model.Signal, risk, reward float64, now time.Time) string {
	trend := "🚀 BUY | Bullish trend confirmed"
	if sig.Direction == model.DirectionShort {
		trend = "📉 SELL | Bearish trend confirmed"
	}
	id := markethours.SignalID(sig.Pair, now)
	var b strings.Builder
	fmt.Fprintf(&b, "📡 [FX SIGNAL] %s 1h\n", sig.Pair)
	fmt.Fprintf(&b, "%s\n", trend)
	fmt.Fprintf(&b, "💹 Entry: %.5f\n", sig.Entry)
	fmt.Fprintf(&b, "🛑 SL: %.5f | 🎯 TP: %.5f (RR %s)\n", sig.StopLoss, sig.TakeProfit, RRText(sig.RiskReward))
	fmt.Fprintf(&b, "⚙️ Indicators: EMA20/EMA50 crossover | Range≈%.4f\n", sig.Range)
	fmt.Fprintf(&b, "%s\n", stamp(now))
	fmt.Fprintf(&b, "💰 Risk: $%.2f | Reward: $%.2f\n", risk, reward)
	fmt.Fprintf(&b, "🚦 Status: Awaiting movement...\n")
	fmt.Fprintf(&b, "💬 Use /take %s or /skip %s", id, id)
	return b.String()
}

// Outcome renders a simulated win/loss announcement with the new balance.
func Outcome(out model.Outcome, sig model.Signal, balance float64) string {
	if out.Won {
		return fmt.Sprintf(
			"🏆 [FX RESULT] %s 1h\n"+
				"✅ WIN! 🎯 TP hit at %.5f\n"+
				"💰 +$%.2f\n"+
				"📊 New Balance: $%.2f 🏦",
			out.Pair, sig.TakeProfit, out.Reward, balance)
	}
	return fmt.Sprintf(
		"💥 [FX RESULT] %s 1h\n"+
			"❌ LOSS — SL hit at %.5f\n"+
			"💸 -$%.2f\n"+
			"📊 Updated Balance: $%.2f 🏦",
		out.Pair, sig.StopLoss, out.Risk, balance)
}

// Heartbeat renders the periodic candle-feed check: last close per pair,
// or a missing-data marker when the fetch came up empty.
func Heartbeat(pairs []string, lastClose map[string]float64, now time.Time) string {
	lines := []string{"❤️‍🔥 [FX HEARTBEAT]"}
	for _, pair := range pairs {
		if close, ok := lastClose[pair]; ok {
			lines = append(lines, fmt.Sprintf("✅ %s | Last Close: %.5f", pair, close))
		} else {
			lines = append(lines, fmt.Sprintf("🔴 %s | Candle Missing (fetch error)", pair))
		}
	}
	lines = append(lines, "", stamp(now))
	return strings.Join(lines, "\n")
}

// Morning renders the session-open activation message.
func Morning(startCapital, riskPercent float64, lot string, leverage int) string {
	risk := startCapital * riskPercent / 100
	return fmt.Sprintf(
		"🌅 Good morning! Scanning the forex skies for entries ☁️💹\n"+
			"⚙️ Session Active: Monday–Thursday | %02d:00–%02d:00 (Asia/Dhaka)\n"+
			"💵 Capital: $%.0f | Lot: %s | Risk: $%.0f (%.0f%%) | Leverage: 1:%d\n"+
			"📊 Mode: Fixed Risk + Balance Tracking",
		markethours.SessionOpenHour, markethours.SessionCloseHour,
		startCapital, lot, risk, riskPercent, leverage)
}

// WeekendRest renders the rest-day stand-down message.
func WeekendRest() string {
	return "⚠️ Market cooling down...\n" +
		"🕊️ Entering weekend rest mode 😴📉\n" +
		fmt.Sprintf("📅 Next Active Session: Monday %02d:00 (Asia/Dhaka)", markethours.SessionOpenHour)
}

// MonthlyReset renders the first-of-month balance reset announcement.
func MonthlyReset(startCapital float64, now time.Time) string {
	return fmt.Sprintf(
		"🔁 Monthly Auto-Reset Complete!\n"+
			"📅 New Month: %s\n"+
			"💵 New Starting Capital: $%.0f\n"+
			"⚙️ Mode: Fixed Risk + Balance Tracking\n"+
			"🧭 Fresh cycle ready! 💹",
		markethours.MonthStamp(now), startCapital)
}

// Status renders the /status reply: current balance plus a config echo.
func Status(info StatusInfo, now time.Time) string {
	return fmt.Sprintf(
		"📡 [FX STATUS CHECK]\n"+
			"%s\n"+
			"💵 Current Balance: $%.2f\n"+
			"⚙️ Risk: %g%% | Lot: %s | Leverage: 1:%d\n"+
			"📈 Markets: %s\n"+
			"❤️‍🔥 Candle Feed: Active ✅\n"+
			"🧭 System: Stable and Ready 💹",
		stamp(now), info.Balance, info.RiskPercent, info.Lot, info.Leverage,
		strings.Join(info.Pairs, ", "))
}

// Startup renders the deployment announcement sent once at boot.
func Startup(pairs []string, now time.Time) string {
	return fmt.Sprintf(
		"🚀 [FX DEPLOYMENT STATUS]\n"+
			"✅ Successfully Deployed and Running Smoothly 💹\n"+
			"%s\n"+
			"🧠 System Scan: Ready | Candle Feed: Active\n"+
			"📡 Markets: %s",
		stamp(now), strings.Join(pairs, ", "))
}
