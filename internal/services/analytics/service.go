// Package analytics wires the pure metric computations to storage: it loads
// the trade snapshot for an account, feeds the computation, and returns the
// result untouched.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/analytics"
	"tradebook/internal/domain/account"
	"tradebook/internal/domain/playbook"
	"tradebook/internal/domain/trade"
	"tradebook/internal/metrics"
	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

// DashboardReport extends the headline metrics with the recent activity count,
// which depends on the current time and therefore lives outside the pure
// computation.
type DashboardReport struct {
	analytics.DashboardMetrics
	TradesLast7Days int `json:"tradesLast7Days"`
}

// Service computes account analytics from stored trades.
type Service struct {
	trades    trade.Repository
	accounts  account.Repository
	playbooks playbook.Repository
	log       *logger.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a new analytics service.
func NewService(
	trades trade.Repository,
	accounts account.Repository,
	playbooks playbook.Repository,
) *Service {
	return &Service{
		trades:    trades,
		accounts:  accounts,
		playbooks: playbooks,
		log:       logger.Get(),
		now:       time.Now,
	}
}

// Dashboard returns the headline metrics for an account. An account with no
// matching trades yields the zero-valued report.
func (s *Service) Dashboard(ctx context.Context, accountID, userID uuid.UUID, filter trade.Filter) (*DashboardReport, error) {
	start := time.Now()

	trades, err := s.trades.ListByAccount(ctx, accountID, userID, filter)
	if err != nil {
		metrics.RecordComputation("dashboard", 0, time.Since(start), err)
		return nil, errors.Wrap(err, "failed to list trades")
	}

	since := s.now().UTC().AddDate(0, 0, -7)
	recent, err := s.trades.CountSince(ctx, accountID, userID, since)
	if err != nil {
		metrics.RecordComputation("dashboard", 0, time.Since(start), err)
		return nil, errors.Wrap(err, "failed to count recent trades")
	}

	report := &DashboardReport{
		DashboardMetrics: analytics.ComputeDashboardMetrics(trades),
		TradesLast7Days:  recent,
	}
	metrics.RecordComputation("dashboard", len(trades), time.Since(start), nil)

	s.log.Debugw("computed dashboard metrics",
		"account_id", accountID,
		"total_trades", report.TotalTrades,
	)

	return report, nil
}

// Advanced returns the risk and consistency metrics for an account. When the
// account record itself is missing the drawdown percentage is computed against
// a zero balance instead of failing, so a fresh account with no row yet still
// gets a well-formed response.
func (s *Service) Advanced(ctx context.Context, accountID, userID uuid.UUID, filter trade.Filter) (*analytics.AdvancedMetrics, error) {
	start := time.Now()

	var initialBalance float64

	acc, err := s.accounts.GetByID(ctx, accountID, userID)
	switch {
	case err == nil:
		initialBalance = acc.InitialBalance.InexactFloat64()
	case errors.Is(err, errors.ErrNotFound):
		s.log.Debugw("account not found, using zero balance", "account_id", accountID)
	default:
		metrics.RecordComputation("advanced", 0, time.Since(start), err)
		return nil, errors.Wrap(err, "failed to load account")
	}

	trades, err := s.trades.ListByAccount(ctx, accountID, userID, filter)
	if err != nil {
		metrics.RecordComputation("advanced", 0, time.Since(start), err)
		return nil, errors.Wrap(err, "failed to list trades")
	}

	result := analytics.ComputeAdvancedMetrics(trades, initialBalance)
	metrics.RecordComputation("advanced", len(trades), time.Since(start), nil)

	return &result, nil
}

// Playbooks returns the per-strategy breakdown for an account. Every playbook
// the user has defined appears in the result, including ones with no trades.
func (s *Service) Playbooks(ctx context.Context, accountID, userID uuid.UUID, filter trade.Filter) ([]analytics.PlaybookStats, error) {
	start := time.Now()

	names, err := s.playbooks.ListNamesByUser(ctx, userID)
	if err != nil {
		metrics.RecordComputation("playbooks", 0, time.Since(start), err)
		return nil, errors.Wrap(err, "failed to list playbooks")
	}

	trades, err := s.trades.ListByAccount(ctx, accountID, userID, filter)
	if err != nil {
		metrics.RecordComputation("playbooks", 0, time.Since(start), err)
		return nil, errors.Wrap(err, "failed to list trades")
	}

	stats := analytics.ComputePlaybookStats(trades, names)
	metrics.RecordComputation("playbooks", len(trades), time.Since(start), nil)

	return stats, nil
}
