package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"profitflow/internal/config"
	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
	"profitflow/internal/models"
	"profitflow/internal/outbox"
	"profitflow/internal/pagination"
	"profitflow/internal/roi"
)

// DistributionMode selects how a run prices each investment.
type DistributionMode string

const (
	// ModeBaseline pays each plan's fixed weekly return, without a fee.
	ModeBaseline DistributionMode = "baseline"
	// ModeStream pays the allocation-weighted stream return, less the platform fee.
	ModeStream DistributionMode = "stream"
)

// ParseDistributionMode validates a mode name. Empty means baseline.
func ParseDistributionMode(raw string) (DistributionMode, error) {
	switch DistributionMode(raw) {
	case "", ModeBaseline:
		return ModeBaseline, nil
	case ModeStream:
		return ModeStream, nil
	}
	return "", apperrors.ErrInvalidMode
}

// DistributionRequest describes one weekly run.
type DistributionRequest struct {
	Mode       DistributionMode
	WeekEnding time.Time
	DryRun     bool
	// Performance overrides the stored performance record in stream mode.
	Performance roi.StreamROIs
	// RunBy is the admin who triggered the run; empty for pipeline runs.
	RunBy string
}

// Payout is the computed profit of one investment.
type Payout struct {
	InvestmentID string          `json:"investment_id"`
	UserID       string          `json:"user_id"`
	PlanID       string          `json:"plan_id"`
	Currency     string          `json:"currency"`
	Principal    decimal.Decimal `json:"principal"`
	ROIPct       decimal.Decimal `json:"roi_pct"`
	Gross        decimal.Decimal `json:"gross"`
	Fee          decimal.Decimal `json:"fee"`
	Net          decimal.Decimal `json:"net"`
	FallbackPlan bool            `json:"fallback_plan,omitempty"`
}

// UserPayout aggregates one user's payouts in one currency.
type UserPayout struct {
	UserID      string          `json:"user_id"`
	Currency    string          `json:"currency"`
	Investments int             `json:"investments"`
	Net         decimal.Decimal `json:"net"`
}

// DistributionResult summarises a run or a dry-run preview.
type DistributionResult struct {
	Week            string           `json:"week"`
	WeekEnding      time.Time        `json:"week_ending"`
	Mode            DistributionMode `json:"mode"`
	DryRun          bool             `json:"dry_run"`
	FeePct          decimal.Decimal  `json:"fee_pct"`
	Streams         roi.StreamROIs   `json:"streams,omitempty"`
	InvestmentCount int              `json:"investment_count"`
	TotalNet        decimal.Decimal  `json:"total_net"`
	Payouts         []Payout         `json:"payouts"`
	Users           []UserPayout     `json:"users"`
}

// distributionService runs the weekly profit distribution.
type distributionService struct {
	db          *gorm.DB
	calc        *roi.Calculator
	wallets     WalletServicer
	performance PerformanceServicer
	notifier    NotificationServicer
	audit       AuditServicer
	feePct      decimal.Decimal
	strict      bool
}

// NewDistributionService creates a new DistributionServicer.
func NewDistributionService(
	db *gorm.DB,
	cfg *config.Config,
	calc *roi.Calculator,
	wallets WalletServicer,
	performance PerformanceServicer,
	notifier NotificationServicer,
	audit AuditServicer,
) DistributionServicer {
	return &distributionService{
		db:          db,
		calc:        calc,
		wallets:     wallets,
		performance: performance,
		notifier:    notifier,
		audit:       audit,
		feePct:      cfg.PlatformFeePct,
		strict:      cfg.UnknownPlanPolicy == config.PlanPolicyStrict,
	}
}

// HasRunForWeek reports whether the week containing weekEnding was settled.
func (s *distributionService) HasRunForWeek(weekEnding time.Time) (bool, error) {
	week, _ := WeekKey(weekEnding)
	return hasRunForWeek(s.db, week)
}

func hasRunForWeek(db *gorm.DB, week string) (bool, error) {
	var count int64
	if err := db.Model(&models.ProfitLog{}).Where("week = ?", week).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// ListRuns lists settled weeks, latest first.
func (s *distributionService) ListRuns(page pagination.PageRequest) (*pagination.PageResponse[models.ProfitLog], error) {
	resp, err := pagination.Fetch[models.ProfitLog](s.db.Model(&models.ProfitLog{}), page, "week DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

// Run computes the week's payouts and, unless DryRun is set, credits them.
// All writes of a run share one database transaction: either every active
// investment is paid and the week is logged, or nothing changes.
func (s *distributionService) Run(ctx context.Context, req DistributionRequest) (*DistributionResult, error) {
	mode, err := ParseDistributionMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	if req.WeekEnding.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "weekEnding is required")
	}
	week, day := WeekKey(req.WeekEnding)
	db := s.db.WithContext(ctx)

	if !req.DryRun {
		ran, err := hasRunForWeek(db, week)
		if err != nil {
			return nil, err
		}
		if ran {
			return nil, apperrors.ErrAlreadyDistributed
		}
	}

	var streams roi.StreamROIs
	if mode == ModeStream {
		if streams, err = s.resolveStreams(week, req.Performance); err != nil {
			return nil, err
		}
	}

	if req.DryRun {
		result, err := s.compute(db, mode, week, day, streams, false)
		if err != nil {
			return nil, err
		}
		result.DryRun = true
		return result, nil
	}

	// Pricing reads the ACTIVE investments under row locks inside the same
	// transaction that credits them, so activation and maturity wait for the run.
	var result *DistributionResult
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		if result, err = s.compute(tx, mode, week, day, streams, true); err != nil {
			return err
		}
		return s.apply(tx, result, req.RunBy)
	})
	if err != nil {
		return nil, runError(err)
	}

	logger.Get().Infow("profit distribution completed",
		"week", week,
		"mode", mode,
		"investments", result.InvestmentCount,
		"users", len(result.Users),
		"total_net", result.TotalNet.String(),
	)
	s.afterCommit(ctx, result, req.RunBy)
	return result, nil
}

// resolveStreams prefers the request payload and falls back to the stored
// performance record of the week.
func (s *distributionService) resolveStreams(week string, supplied roi.StreamROIs) (roi.StreamROIs, error) {
	if supplied != nil {
		return supplied, nil
	}
	streams, err := s.performance.StreamsForWeek(week)
	if err != nil {
		if errors.Is(err, apperrors.ErrPerformanceNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("stream mode needs performance data and none is recorded for %s", week))
		}
		return nil, err
	}
	return streams, nil
}

// compute prices every ACTIVE investment. It performs reads only; lock takes
// row locks on the investments it prices.
func (s *distributionService) compute(db *gorm.DB, mode DistributionMode, week string, day time.Time, streams roi.StreamROIs, lock bool) (*DistributionResult, error) {
	var plans []models.InvestmentPlan
	if err := db.Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	baselines := make(map[string]decimal.Decimal, len(plans))
	for _, p := range plans {
		baselines[p.ID] = p.ReturnPercentage
	}

	query := db.Where("status = ?", models.InvestmentActive).Order("created_at, id")
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var investments []models.Investment
	err := query.Find(&investments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &DistributionResult{
		Week:       week,
		WeekEnding: day,
		Mode:       mode,
		Streams:    streams,
		TotalNet:   decimal.Zero,
		Payouts:    make([]Payout, 0, len(investments)),
		Users:      []UserPayout{},
	}
	if mode == ModeStream {
		result.FeePct = s.feePct
	}

	hundred := decimal.NewFromInt(100)
	feeRate := result.FeePct.Div(hundred)
	userIndex := make(map[string]int)

	for i := range investments {
		inv := &investments[i]

		fallback := false
		if streams != nil {
			if _, fallback, err = s.calc.Allocation(inv.PlanID); err != nil {
				return nil, err
			}
		}
		baseline, known := baselines[inv.PlanID]
		if !known {
			if s.strict {
				return nil, apperrors.WithMessage(apperrors.ErrUnknownPlan,
					fmt.Sprintf("investment %s references unknown plan %q", inv.ID, inv.PlanID))
			}
			baseline = baselines[roi.FallbackPlan]
			fallback = true
		}

		pct, err := s.calc.WeightedROI(inv.PlanID, streams, baseline)
		if err != nil {
			return nil, err
		}

		gross := inv.Principal.Mul(pct).Div(hundred).Round(moneyPlaces)
		fee := gross.Mul(feeRate).Round(moneyPlaces)
		net := gross.Sub(fee)
		if net.IsNegative() {
			// Losing weeks pay nothing; principal is never debited.
			gross, fee, net = decimal.Zero, decimal.Zero, decimal.Zero
		}

		result.Payouts = append(result.Payouts, Payout{
			InvestmentID: inv.ID,
			UserID:       inv.UserID,
			PlanID:       inv.PlanID,
			Currency:     inv.Currency,
			Principal:    inv.Principal,
			ROIPct:       pct,
			Gross:        gross,
			Fee:          fee,
			Net:          net,
			FallbackPlan: fallback,
		})
		result.TotalNet = result.TotalNet.Add(net)

		key := inv.UserID + "|" + inv.Currency
		idx, seen := userIndex[key]
		if !seen {
			idx = len(result.Users)
			userIndex[key] = idx
			result.Users = append(result.Users, UserPayout{UserID: inv.UserID, Currency: inv.Currency, Net: decimal.Zero})
		}
		result.Users[idx].Investments++
		result.Users[idx].Net = result.Users[idx].Net.Add(net)
	}
	result.InvestmentCount = len(result.Payouts)
	return result, nil
}

// apply writes the credits, the outbox event and the ProfitLog sentinel inside
// tx. The sentinel is inserted last; its unique week key makes a concurrent
// duplicate run fail and roll back.
func (s *distributionService) apply(tx *gorm.DB, result *DistributionResult, runBy string) error {
	for i := range result.Payouts {
		p := &result.Payouts[i]
		if !p.Net.IsPositive() {
			continue
		}
		periodKey := result.Week + ":" + p.InvestmentID
		investmentID := p.InvestmentID
		if _, err := s.wallets.Credit(tx, CreditParams{
			UserID:       p.UserID,
			Currency:     p.Currency,
			Amount:       p.Net,
			Type:         models.TransactionProfit,
			InvestmentID: &investmentID,
			PeriodKey:    &periodKey,
			Reference: map[string]interface{}{
				"week":    result.Week,
				"mode":    string(result.Mode),
				"plan_id": p.PlanID,
				"roi_pct": p.ROIPct.String(),
				"gross":   p.Gross.String(),
				"fee":     p.Fee.String(),
			},
		}); err != nil {
			return err
		}
	}

	if err := outbox.Enqueue(tx, outbox.EventProfitDistributed, result.Week, map[string]interface{}{
		"week":             result.Week,
		"mode":             string(result.Mode),
		"investment_count": result.InvestmentCount,
		"total_net":        result.TotalNet.String(),
		"users":            result.Users,
	}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entry := &models.ProfitLog{
		Week:            result.Week,
		WeekEnding:      result.WeekEnding,
		Mode:            string(result.Mode),
		InvestmentCount: result.InvestmentCount,
		TotalNet:        result.TotalNet,
	}
	if runBy != "" {
		entry.RunBy = &runBy
	}
	if err := tx.Create(entry).Error; err != nil {
		return err
	}
	return nil
}

// runError maps a failed run transaction to the error the caller sees.
func runError(err error) error {
	if isDuplicateKey(err) {
		return apperrors.ErrAlreadyDistributed
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// afterCommit notifies users and audits the run; pipeline runs are audited
// without a user. Failures are logged only.
func (s *distributionService) afterCommit(ctx context.Context, result *DistributionResult, runBy string) {
	for _, u := range result.Users {
		if !u.Net.IsPositive() {
			continue
		}
		s.notifier.Notify(ctx, u.UserID, models.NotificationProfit,
			"Weekly profit credited",
			fmt.Sprintf("%s %s profit for the week ending %s has been added to your wallet.", u.Net, u.Currency, result.Week),
			map[string]interface{}{
				"week":     result.Week,
				"amount":   u.Net.String(),
				"currency": u.Currency,
			})
	}

	s.audit.Log(runBy, "DISTRIBUTE_PROFITS", "profit_log", result.Week, "", map[string]interface{}{
		"mode":             string(result.Mode),
		"investment_count": result.InvestmentCount,
		"total_net":        result.TotalNet.String(),
	})
}
