package analytics_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/analytics"
	"tradebook/internal/domain/trade"
)

func strategyTrade(strategy string, outcome trade.Outcome, pnl float64) trade.Trade {
	tr := closedTrade(outcome, pnl, baseDate)
	if strategy != "" {
		tr.Strategy = sql.NullString{String: strategy, Valid: true}
	}
	return tr
}

func bucketByName(t *testing.T, stats []analytics.PlaybookStats, name string) analytics.PlaybookStats {
	t.Helper()
	for _, s := range stats {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("bucket %q not found in %v", name, stats)
	return analytics.PlaybookStats{}
}

func TestComputePlaybookStats_Buckets(t *testing.T) {
	trades := []trade.Trade{
		strategyTrade("Breakout", trade.OutcomeWin, 100),
		strategyTrade("Breakout", trade.OutcomeWin, 200),
		strategyTrade("Reversal", trade.OutcomeLoss, -50),
		strategyTrade("Scalp", trade.OutcomeWin, 10), // not a known playbook
		strategyTrade("", trade.OutcomeWin, 500),     // no strategy label
	}

	stats := analytics.ComputePlaybookStats(trades, []string{"Breakout", "Reversal", "Swing"})

	require.Len(t, stats, 5, "three known playbooks, one discovered label, one sentinel bucket")

	breakout := bucketByName(t, stats, "Breakout")
	assert.Equal(t, 2, breakout.TotalTrades)
	assert.Equal(t, 2, breakout.Wins)
	assert.Equal(t, 100.0, breakout.WinRate)
	assert.Equal(t, 300.0, breakout.NetPnl)
	assert.Equal(t, 150.0, breakout.AvgWin)
	assert.Equal(t, float64(analytics.ProfitFactorCap), breakout.ProfitFactor)
	assert.Equal(t, 150.0, breakout.Expectancy, "all wins: expectancy equals avg win")

	reversal := bucketByName(t, stats, "Reversal")
	assert.Equal(t, 1, reversal.TotalTrades)
	assert.Equal(t, -50.0, reversal.NetPnl)
	assert.Equal(t, 0.0, reversal.WinRate)
	assert.Equal(t, 50.0, reversal.AvgLoss)
	assert.Equal(t, -50.0, reversal.Expectancy, "all losses: expectancy is minus avg loss")

	scalp := bucketByName(t, stats, "Scalp")
	assert.Equal(t, 1, scalp.TotalTrades, "labels without a playbook still get a bucket")
}

func TestComputePlaybookStats_ZeroTradePlaybookIncluded(t *testing.T) {
	stats := analytics.ComputePlaybookStats(nil, []string{"Swing"})

	require.Len(t, stats, 2)

	swing := bucketByName(t, stats, "Swing")
	assert.Equal(t, analytics.PlaybookStats{Name: "Swing"}, swing,
		"a playbook with no trades appears with all-zero metrics, not omitted")
}

func TestComputePlaybookStats_SortOrder(t *testing.T) {
	trades := []trade.Trade{
		strategyTrade("Low", trade.OutcomeLoss, -100),
		strategyTrade("High", trade.OutcomeWin, 50),
		strategyTrade("Mid", trade.OutcomeWin, 10),
		strategyTrade("", trade.OutcomeWin, 10000), // sentinel bucket outearns everyone
	}

	stats := analytics.ComputePlaybookStats(trades, nil)

	require.Len(t, stats, 4)
	assert.Equal(t, "High", stats[0].Name)
	assert.Equal(t, "Mid", stats[1].Name)
	assert.Equal(t, "Low", stats[2].Name)
	assert.Equal(t, analytics.NoStrategyBucket, stats[3].Name,
		"the sentinel bucket sorts last regardless of its net pnl")

	for i := 0; i < len(stats)-2; i++ {
		assert.GreaterOrEqual(t, stats[i].NetPnl, stats[i+1].NetPnl)
	}
}

func TestComputePlaybookStats_AvgRR(t *testing.T) {
	withRR := strategyTrade("Breakout", trade.OutcomeWin, 100)
	withRR.RMultiple = sql.NullFloat64{Float64: 2.5, Valid: true}

	alsoRR := strategyTrade("Breakout", trade.OutcomeLoss, -50)
	alsoRR.RMultiple = sql.NullFloat64{Float64: -1.0, Valid: true}

	noRR := strategyTrade("Breakout", trade.OutcomeWin, 40) // null rMultiple stays out of the mean

	stats := analytics.ComputePlaybookStats([]trade.Trade{withRR, alsoRR, noRR}, []string{"Breakout"})

	breakout := bucketByName(t, stats, "Breakout")
	assert.Equal(t, 0.75, breakout.AvgRR)
}

func TestComputePlaybookStats_Expectancy(t *testing.T) {
	// 2 wins of 150 avg, 1 loss of 90: expectancy = (2/3)*150 - (1/3)*90 = 70.
	trades := []trade.Trade{
		strategyTrade("Trend", trade.OutcomeWin, 100),
		strategyTrade("Trend", trade.OutcomeWin, 200),
		strategyTrade("Trend", trade.OutcomeLoss, -90),
	}

	stats := analytics.ComputePlaybookStats(trades, []string{"Trend"})

	trend := bucketByName(t, stats, "Trend")
	assert.Equal(t, 66.67, trend.WinRate)
	assert.Equal(t, 70.0, trend.Expectancy, "expectancy uses unrounded win rate internally")
}

func TestComputePlaybookStats_PendingOnlyBucket(t *testing.T) {
	open := openTrade(baseDate)
	open.Strategy = sql.NullString{String: "Breakout", Valid: true}

	stats := analytics.ComputePlaybookStats([]trade.Trade{open}, []string{"Breakout"})

	breakout := bucketByName(t, stats, "Breakout")
	assert.Equal(t, 1, breakout.TotalTrades)
	assert.Equal(t, 0.0, breakout.WinRate)
	assert.Equal(t, 0.0, breakout.ProfitFactor)
}
