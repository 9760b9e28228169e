package analytics

import (
	"sort"

	"tradebook/internal/domain/trade"
)

// StreakSummary describes the runs of consecutive equal outcomes in a trade
// sequence ordered from most recent to oldest.
type StreakSummary struct {
	Current        int
	CurrentOutcome trade.Outcome
	MaxWin         int
	MaxLoss        int
}

// detectStreaks partitions the time-ordered trade sequence into maximal runs
// of equal outcome and reports the most recent run plus the longest win and
// loss runs. The scan replaces the nested window-function query the same
// numbers used to come from.
func detectStreaks(trades []trade.Trade) StreakSummary {
	var s StreakSummary
	if len(trades) == 0 {
		return s
	}

	ordered := make([]trade.Trade, len(trades))
	copy(ordered, trades)
	sortMostRecentFirst(ordered)

	runOutcome := ordered[0].Outcome
	runLen := 0

	flush := func() {
		if s.Current == 0 {
			s.Current = runLen
			s.CurrentOutcome = runOutcome
		}
		switch runOutcome {
		case trade.OutcomeWin:
			if runLen > s.MaxWin {
				s.MaxWin = runLen
			}
		case trade.OutcomeLoss:
			if runLen > s.MaxLoss {
				s.MaxLoss = runLen
			}
		}
	}

	for i := range ordered {
		if ordered[i].Outcome != runOutcome {
			flush()
			runOutcome = ordered[i].Outcome
			runLen = 0
		}
		runLen++
	}
	flush()

	return s
}

// sortMostRecentFirst orders trades by entry date then entry time, newest
// first. Trades sharing the same timestamp fall back to ascending ID so the
// order, and therefore every streak figure, is reproducible across runs.
func sortMostRecentFirst(trades []trade.Trade) {
	sort.Slice(trades, func(i, j int) bool {
		a, b := &trades[i], &trades[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		at, bt := entryTimeKey(a), entryTimeKey(b)
		if at != bt {
			return at > bt
		}
		return a.ID.String() < b.ID.String()
	})
}

func entryTimeKey(t *trade.Trade) string {
	if !t.EntryTime.Valid {
		return ""
	}
	return t.EntryTime.String
}
