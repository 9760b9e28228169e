// Package analytics computes trade performance metrics as pure functions over
// an in-memory snapshot of trades. It performs no I/O and keeps no state, so
// the same trade set always produces the same result; storage adapters feed it
// and transport layers serialize its output.
package analytics

import (
	"math"

	"tradebook/internal/domain/trade"
)

// DashboardMetrics are the headline numbers for an account.
type DashboardMetrics struct {
	TotalTrades int     `json:"totalTrades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Breakeven   int     `json:"breakeven"`
	WinRate     float64 `json:"winRate"`
	TotalPnl    float64 `json:"totalPnl"`
}

// AdvancedMetrics are the risk and consistency numbers for an account.
//
// SharpeRatio is a per-trade signal-to-noise ratio (mean pnl over population
// standard deviation), not an annualized Sharpe ratio: no risk-free rate, no
// time normalization. MaxDrawdown is approximated by the single largest losing
// trade rather than a running-equity-curve drawdown. Both simplifications are
// intentional.
type AdvancedMetrics struct {
	AvgPnl             float64 `json:"avgPnl"`
	PnlStdDev          float64 `json:"pnlStdDev"`
	SharpeRatio        float64 `json:"sharpeRatio"`
	MaxDrawdown        float64 `json:"maxDrawdown"`
	MaxDrawdownPercent float64 `json:"maxDrawdownPercent"`
	CalmarRatio        float64 `json:"calmarRatio"`

	CurrentStreak        int           `json:"currentStreak"`
	CurrentStreakOutcome trade.Outcome `json:"currentStreakOutcome,omitempty"`
	MaxWinStreak         int           `json:"maxWinStreak"`
	MaxLossStreak        int           `json:"maxLossStreak"`

	ProfitFactor float64 `json:"profitFactor"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	LargestWin   float64 `json:"largestWin"`
	LargestLoss  float64 `json:"largestLoss"`
}

// ProfitFactorCap is emitted instead of +Inf when gross losses are zero but
// gross wins are not, keeping every metric finite and JSON-sortable.
const ProfitFactorCap = 999

// ComputeDashboardMetrics derives the basic metrics for a trade set. An empty
// set yields the zero value, never an error. Pending trades count toward
// TotalTrades and TotalPnl but are excluded from the win-rate denominator,
// as are breakevens.
func ComputeDashboardMetrics(trades []trade.Trade) DashboardMetrics {
	var m DashboardMetrics
	var totalPnl float64

	m.TotalTrades = len(trades)
	for i := range trades {
		switch trades[i].Outcome {
		case trade.OutcomeWin:
			m.Wins++
		case trade.OutcomeLoss:
			m.Losses++
		case trade.OutcomeBreakeven:
			m.Breakeven++
		}
		totalPnl += trades[i].PnlValue()
	}

	decisive := m.Wins + m.Losses
	if decisive > 0 {
		m.WinRate = round2(float64(m.Wins) / float64(decisive) * 100)
	}
	m.TotalPnl = round2(totalPnl)

	return m
}

// ComputeAdvancedMetrics derives the risk metrics for a trade set. The
// initialBalance normalizes the drawdown percentage; a zero or negative
// balance yields a zero percentage rather than a division by zero.
func ComputeAdvancedMetrics(trades []trade.Trade, initialBalance float64) AdvancedMetrics {
	var m AdvancedMetrics

	var (
		totalPnl float64
		sumPnl   float64
		nPnl     int
		wins     int
		losses   int
		sumWins  float64
		sumLoss  float64 // absolute value
		maxWin   float64
		maxLoss  float64 // absolute value
	)

	for i := range trades {
		t := &trades[i]
		pnl := t.PnlValue()
		totalPnl += pnl

		if t.Pnl.Valid {
			sumPnl += pnl
			nPnl++
		}

		switch t.Outcome {
		case trade.OutcomeWin:
			wins++
			sumWins += pnl
			if pnl > maxWin {
				maxWin = pnl
			}
		case trade.OutcomeLoss:
			losses++
			sumLoss += math.Abs(pnl)
			if abs := math.Abs(pnl); abs > maxLoss {
				maxLoss = abs
			}
		}
	}

	var avgPnl, stdDev float64
	if nPnl > 0 {
		avgPnl = sumPnl / float64(nPnl)

		var sumSq float64
		for i := range trades {
			if !trades[i].Pnl.Valid {
				continue
			}
			d := trades[i].PnlValue() - avgPnl
			sumSq += d * d
		}
		// Population standard deviation: descriptive over the full observed
		// sample, so divide by N rather than N-1.
		stdDev = math.Sqrt(sumSq / float64(nPnl))
	}

	var sharpe float64
	if stdDev > 0 {
		sharpe = avgPnl / stdDev
	}

	profitFactor := profitFactor(sumWins, sumLoss)

	var avgWin, avgLoss float64
	if wins > 0 {
		avgWin = sumWins / float64(wins)
	}
	if losses > 0 {
		avgLoss = sumLoss / float64(losses)
	}

	// Largest single losing trade stands in for a full equity-curve drawdown.
	maxDrawdown := maxLoss

	var drawdownPct float64
	if initialBalance > 0 {
		drawdownPct = maxDrawdown / initialBalance * 100
	}

	var calmar float64
	if maxDrawdown > 0 {
		calmar = totalPnl / maxDrawdown
	}

	streaks := detectStreaks(trades)

	m.AvgPnl = round2(avgPnl)
	m.PnlStdDev = round2(stdDev)
	m.SharpeRatio = round2(sharpe)
	m.MaxDrawdown = round2(maxDrawdown)
	m.MaxDrawdownPercent = round2(drawdownPct)
	m.CalmarRatio = round2(calmar)
	m.CurrentStreak = streaks.Current
	m.CurrentStreakOutcome = streaks.CurrentOutcome
	m.MaxWinStreak = streaks.MaxWin
	m.MaxLossStreak = streaks.MaxLoss
	m.ProfitFactor = round2(profitFactor)
	m.AvgWin = round2(avgWin)
	m.AvgLoss = round2(avgLoss)
	m.LargestWin = round2(maxWin)
	m.LargestLoss = round2(maxLoss)

	return m
}

// profitFactor implements the gross-win over gross-loss ratio with the finite
// sentinel for the zero-loss case.
func profitFactor(sumWins, sumLossAbs float64) float64 {
	if sumLossAbs > 0 {
		return sumWins / sumLossAbs
	}
	if sumWins > 0 {
		return ProfitFactorCap
	}
	return 0
}

// round2 rounds to two decimal places. All metric rounding happens here, at
// the output boundary, so derived ratios never compound rounding error.
func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}
