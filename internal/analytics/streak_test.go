package analytics_test

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/analytics"
	"tradebook/internal/domain/trade"
)

// outcomesMostRecentFirst builds a trade per outcome, newest first, with one
// day between entries.
func outcomesMostRecentFirst(outcomes ...trade.Outcome) []trade.Trade {
	trades := make([]trade.Trade, 0, len(outcomes))
	for i, o := range outcomes {
		pnl := 10.0
		if o == trade.OutcomeLoss {
			pnl = -10.0
		}
		trades = append(trades, closedTrade(o, pnl, baseDate.AddDate(0, 0, -i)))
	}
	return trades
}

func TestStreakDetection(t *testing.T) {
	trades := outcomesMostRecentFirst(
		trade.OutcomeLoss,
		trade.OutcomeLoss,
		trade.OutcomeWin,
		trade.OutcomeWin,
		trade.OutcomeWin,
		trade.OutcomeLoss,
	)

	m := analytics.ComputeAdvancedMetrics(trades, 10000)

	assert.Equal(t, 2, m.CurrentStreak)
	assert.Equal(t, trade.OutcomeLoss, m.CurrentStreakOutcome)
	assert.Equal(t, 3, m.MaxWinStreak)
	assert.Equal(t, 2, m.MaxLossStreak)
}

func TestStreakDetection_InputOrderIrrelevant(t *testing.T) {
	trades := outcomesMostRecentFirst(
		trade.OutcomeWin,
		trade.OutcomeWin,
		trade.OutcomeLoss,
		trade.OutcomeWin,
		trade.OutcomeLoss,
	)

	expected := analytics.ComputeAdvancedMetrics(trades, 10000)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]trade.Trade, len(trades))
		copy(shuffled, trades)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := analytics.ComputeAdvancedMetrics(shuffled, 10000)
		require.Equal(t, expected, got, "streaks must be derived from entry order, not slice order")
	}
}

func TestStreakDetection_EntryTimeBreaksSameDay(t *testing.T) {
	win := closedTrade(trade.OutcomeWin, 10, baseDate)
	win.EntryTime = sql.NullString{String: "09:30", Valid: true}

	loss := closedTrade(trade.OutcomeLoss, -10, baseDate)
	loss.EntryTime = sql.NullString{String: "15:45", Valid: true}

	m := analytics.ComputeAdvancedMetrics([]trade.Trade{win, loss}, 10000)

	assert.Equal(t, 1, m.CurrentStreak)
	assert.Equal(t, trade.OutcomeLoss, m.CurrentStreakOutcome, "the 15:45 loss is the most recent trade")
}

func TestStreakDetection_IdenticalTimestampsAreStable(t *testing.T) {
	// Same entry date, no entry time: the ID tie-break keeps the run
	// partition reproducible regardless of input permutation.
	mk := func(n int, o trade.Outcome) trade.Trade {
		tr := closedTrade(o, 10, baseDate)
		tr.ID = uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
		return tr
	}

	trades := []trade.Trade{
		mk(1, trade.OutcomeWin),
		mk(2, trade.OutcomeWin),
		mk(3, trade.OutcomeLoss),
	}

	expected := analytics.ComputeAdvancedMetrics(trades, 10000)
	assert.Equal(t, 2, expected.CurrentStreak)
	assert.Equal(t, trade.OutcomeWin, expected.CurrentStreakOutcome)

	reversed := []trade.Trade{trades[2], trades[1], trades[0]}
	got := analytics.ComputeAdvancedMetrics(reversed, 10000)
	require.Equal(t, expected, got)
}

func TestStreakDetection_PendingRunIsCurrent(t *testing.T) {
	open := openTrade(baseDate)
	win := closedTrade(trade.OutcomeWin, 10, baseDate.AddDate(0, 0, -1))

	m := analytics.ComputeAdvancedMetrics([]trade.Trade{open, win}, 10000)

	assert.Equal(t, 1, m.CurrentStreak)
	assert.Equal(t, trade.OutcomePending, m.CurrentStreakOutcome)
	assert.Equal(t, 1, m.MaxWinStreak)
	assert.Equal(t, 0, m.MaxLossStreak, "no loss run exists")
}

func TestStreakDetection_NoTrades(t *testing.T) {
	m := analytics.ComputeAdvancedMetrics(nil, 10000)

	assert.Equal(t, 0, m.CurrentStreak)
	assert.Equal(t, trade.Outcome(""), m.CurrentStreakOutcome)
	assert.Equal(t, 0, m.MaxWinStreak)
	assert.Equal(t, 0, m.MaxLossStreak)
}
