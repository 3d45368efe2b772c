package loyalty

import (
	"context"
	"fmt"
	"math"
	"time"

	"log/slog"

	"github.com/pinglocal/pinglocal/pinglocal/config"
	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
)

// Tier names, ordered.
const (
	TierMember   = "member"
	TierHero     = "hero"
	TierChampion = "champion"
	TierLegend   = "legend"
)

// Tier band lower bounds over cumulative points.
const (
	heroThreshold     = 10
	championThreshold = 1200
	legendThreshold   = 10000
)

// PointsForBill converts a bill amount into loyalty points: floor(amount*10).
func PointsForBill(amount float64) int64 {
	return int64(math.Floor(amount * config.PointsPerCurrencyUnit))
}

// TierForPoints is a pure function of cumulative points. Tier is always
// recomputed from the ledger total so manual point adjustments stay
// consistent; it is never incrementally tracked.
func TierForPoints(points int64) string {
	switch {
	case points >= legendThreshold:
		return TierLegend
	case points >= championThreshold:
		return TierChampion
	case points >= heroThreshold:
		return TierHero
	default:
		return TierMember
	}
}

// CreditResult describes one successful credit.
type CreditResult struct {
	Points   int64
	Total    int64
	Tier     string
	Upgraded bool
}

// Service appends ledger entries and keeps the denormalized account tier in
// step with the ledger.
type Service struct {
	repo repositories.LoyaltyRepository
}

func NewService(repo repositories.LoyaltyRepository) *Service {
	return &Service{repo: repo}
}

// Credit awards points for a confirmed bill: ledger append, full recompute of
// the cumulative total, tier update. Returns whether the tier changed so the
// caller can fire an upgrade notification.
func (s *Service) Credit(ctx context.Context, userID, businessID string, billAmount float64, purchaseTokenID string) (*CreditResult, error) {
	points := PointsForBill(billAmount)

	previous, err := s.repo.GetAccount(ctx, userID, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loyalty account: %w", err)
	}
	previousTier := TierMember
	if previous != nil {
		previousTier = previous.Tier
	}

	entry := &models.PointsEntry{
		UserID:          userID,
		BusinessID:      businessID,
		Points:          points,
		Reason:          "bill confirmed",
		PurchaseTokenID: &purchaseTokenID,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append points entry: %w", err)
	}

	total, err := s.repo.TotalPoints(ctx, userID, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to total points: %w", err)
	}

	tier := TierForPoints(total)
	if err := s.repo.UpsertAccountTier(ctx, userID, businessID, tier); err != nil {
		// The ledger entry is committed; the denormalized tier catches up on
		// the next credit.
		slog.Error("Failed to update loyalty tier",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	return &CreditResult{
		Points:   points,
		Total:    total,
		Tier:     tier,
		Upgraded: tier != previousTier,
	}, nil
}
