package metrics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"tradebook/pkg/logger"
)

// CustomCollector collects journal population metrics from the database
type CustomCollector struct {
	log      *logger.Logger
	postgres *sqlx.DB

	// Descriptors
	totalUsers     *prometheus.Desc
	totalAccounts  *prometheus.Desc
	totalTrades    *prometheus.Desc
	totalPlaybooks *prometheus.Desc
	totalEntries   *prometheus.Desc
}

// NewCustomCollector creates a new custom metrics collector
func NewCustomCollector(log *logger.Logger, postgres *sqlx.DB) *CustomCollector {
	return &CustomCollector{
		log:      log,
		postgres: postgres,

		totalUsers: prometheus.NewDesc(
			"tradebook_total_users",
			"Total number of registered users",
			nil, nil,
		),
		totalAccounts: prometheus.NewDesc(
			"tradebook_total_accounts",
			"Total number of trading accounts",
			nil, nil,
		),
		totalTrades: prometheus.NewDesc(
			"tradebook_total_trades",
			"Total number of logged trades by outcome",
			[]string{"outcome"}, nil,
		),
		totalPlaybooks: prometheus.NewDesc(
			"tradebook_total_playbooks",
			"Total number of playbooks",
			nil, nil,
		),
		totalEntries: prometheus.NewDesc(
			"tradebook_total_journal_entries",
			"Total number of journal entries",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *CustomCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalUsers
	ch <- c.totalAccounts
	ch <- c.totalTrades
	ch <- c.totalPlaybooks
	ch <- c.totalEntries
}

// Collect implements prometheus.Collector
func (c *CustomCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.collectCount(ctx, ch, c.totalUsers, "SELECT COUNT(*) FROM users")
	c.collectCount(ctx, ch, c.totalAccounts, "SELECT COUNT(*) FROM accounts")
	c.collectTradeStats(ctx, ch)
	c.collectCount(ctx, ch, c.totalPlaybooks, "SELECT COUNT(*) FROM playbooks")
	c.collectCount(ctx, ch, c.totalEntries, "SELECT COUNT(*) FROM journal_entries")
}

func (c *CustomCollector) collectCount(ctx context.Context, ch chan<- prometheus.Metric, desc *prometheus.Desc, query string) {
	var count int
	if err := c.postgres.GetContext(ctx, &count, query); err != nil {
		c.log.Errorw("failed to collect count metric", "query", query, "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(count))
}

func (c *CustomCollector) collectTradeStats(ctx context.Context, ch chan<- prometheus.Metric) {
	var rows []struct {
		Outcome string `db:"outcome"`
		Count   int    `db:"count"`
	}

	query := `SELECT outcome, COUNT(*) as count FROM trades GROUP BY outcome`
	if err := c.postgres.SelectContext(ctx, &rows, query); err != nil {
		c.log.Errorw("failed to collect trade stats metric", "error", err)
		return
	}

	for _, row := range rows {
		ch <- prometheus.MustNewConstMetric(
			c.totalTrades,
			prometheus.GaugeValue,
			float64(row.Count),
			row.Outcome,
		)
	}
}
