package analytics

import (
	"sort"

	"tradebook/internal/domain/trade"
)

// NoStrategyBucket labels the bucket collecting trades whose strategy is
// empty or references no known playbook name.
const NoStrategyBucket = "No Strategy"

// PlaybookStats is the per-strategy performance breakdown.
type PlaybookStats struct {
	Name         string  `json:"name"`
	TotalTrades  int     `json:"totalTrades"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Breakeven    int     `json:"breakeven"`
	WinRate      float64 `json:"winRate"`
	NetPnl       float64 `json:"netPnl"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	ProfitFactor float64 `json:"profitFactor"`
	Expectancy   float64 `json:"expectancy"`
	AvgRR        float64 `json:"avgRR"`
}

type playbookAccumulator struct {
	trades    int
	wins      int
	losses    int
	breakeven int
	netPnl    float64
	sumWins   float64
	sumLoss   float64 // absolute value
	sumRR     float64
	nRR       int
}

// ComputePlaybookStats groups trades by strategy label and derives the basic
// metrics plus expectancy and average R-multiple per bucket. Every known
// playbook name appears in the output even with zero trades; labels observed
// on trades but absent from the playbook list get their own bucket; trades
// without a strategy land in the NoStrategyBucket, which always sorts last.
// All other buckets are ordered by net pnl, descending.
func ComputePlaybookStats(trades []trade.Trade, playbookNames []string) []PlaybookStats {
	buckets := make(map[string]*playbookAccumulator, len(playbookNames)+1)
	for _, name := range playbookNames {
		if name == "" {
			continue
		}
		buckets[name] = &playbookAccumulator{}
	}
	buckets[NoStrategyBucket] = &playbookAccumulator{}

	for i := range trades {
		t := &trades[i]

		name := t.StrategyName()
		if name == "" {
			name = NoStrategyBucket
		}
		acc, ok := buckets[name]
		if !ok {
			acc = &playbookAccumulator{}
			buckets[name] = acc
		}

		acc.trades++
		pnl := t.PnlValue()
		acc.netPnl += pnl

		switch t.Outcome {
		case trade.OutcomeWin:
			acc.wins++
			acc.sumWins += pnl
		case trade.OutcomeLoss:
			acc.losses++
			if pnl < 0 {
				acc.sumLoss += -pnl
			} else {
				acc.sumLoss += pnl
			}
		case trade.OutcomeBreakeven:
			acc.breakeven++
		}

		if t.RMultiple.Valid {
			acc.sumRR += t.RMultiple.Float64
			acc.nRR++
		}
	}

	out := make([]PlaybookStats, 0, len(buckets))
	for name, acc := range buckets {
		out = append(out, finishBucket(name, acc))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == NoStrategyBucket {
			return false
		}
		if out[j].Name == NoStrategyBucket {
			return true
		}
		if out[i].NetPnl != out[j].NetPnl {
			return out[i].NetPnl > out[j].NetPnl
		}
		return out[i].Name < out[j].Name
	})

	return out
}

func finishBucket(name string, acc *playbookAccumulator) PlaybookStats {
	var winRate, avgWin, avgLoss, avgRR float64

	decisive := acc.wins + acc.losses
	if decisive > 0 {
		winRate = float64(acc.wins) / float64(decisive) * 100
	}
	if acc.wins > 0 {
		avgWin = acc.sumWins / float64(acc.wins)
	}
	if acc.losses > 0 {
		avgLoss = acc.sumLoss / float64(acc.losses)
	}
	if acc.nRR > 0 {
		avgRR = acc.sumRR / float64(acc.nRR)
	}

	// Expectancy combines the unrounded win rate with the unrounded average
	// win/loss sizes; rounding happens once, below.
	p := winRate / 100
	expectancy := p*avgWin - (1-p)*avgLoss

	return PlaybookStats{
		Name:         name,
		TotalTrades:  acc.trades,
		Wins:         acc.wins,
		Losses:       acc.losses,
		Breakeven:    acc.breakeven,
		WinRate:      round2(winRate),
		NetPnl:       round2(acc.netPnl),
		AvgWin:       round2(avgWin),
		AvgLoss:      round2(avgLoss),
		ProfitFactor: round2(profitFactor(acc.sumWins, acc.sumLoss)),
		Expectancy:   round2(expectancy),
		AvgRR:        round2(avgRR),
	}
}
