package incentivetier

import (
	"context"
	"database/sql"
	"strings"
	"time"

	incentivetiererrors "go-bakery/internal/incentivetier/errors"
	"go-bakery/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=tier_service.go -destination=mock/tier_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTierRequest) (TierResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetTiersFilterRequest) ([]TierResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TierResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateTierRequest) (TierResponse, error)
	Deactivate(ctx context.Context, companyID, actorID, id string) error
	Coverage(ctx context.Context, companyID, scope string) (Coverage, error)
	Registry(ctx context.Context, companyID string) (*Registry, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("incentivetier.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("incentivetier.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

type tierFields struct {
	min          decimal.Decimal
	max          *decimal.Decimal
	rewardType   string
	fixedAmount  *decimal.Decimal
	rate         *decimal.Decimal
	applicableTo string
}

func validateTier(f tierFields) error {
	if f.min.IsNegative() {
		return incentivetiererrors.ErrInvalidRange
	}
	if f.max != nil && !f.max.GreaterThan(f.min) {
		return incentivetiererrors.ErrInvalidRange
	}

	switch f.rewardType {
	case RewardTypeFixed, RewardTypePercentage, RewardTypeBoth:
	default:
		return incentivetiererrors.ErrInvalidRewardType
	}

	if f.rewardType != RewardTypePercentage && f.fixedAmount == nil {
		return incentivetiererrors.ErrFixedAmountRequired
	}
	if f.rewardType != RewardTypeFixed && f.rate == nil {
		return incentivetiererrors.ErrPercentageRateRequired
	}
	if (f.fixedAmount != nil && f.fixedAmount.IsNegative()) || (f.rate != nil && f.rate.IsNegative()) {
		return incentivetiererrors.ErrNegativeRewardValue
	}
	return nil
}

func normalizeApplicableTo(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ApplicableToAll
	}
	return v
}

func roundedPtr(d *decimal.Decimal, places int32) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Round(places)
	return &v
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTierRequest) (TierResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TierResponse{}, incentivetiererrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TierResponse{}, incentivetiererrors.ErrInvalidActorID
	}

	fields := tierFields{
		min:          req.MinAchievementPercent,
		max:          req.MaxAchievementPercent,
		rewardType:   req.RewardType,
		fixedAmount:  req.FixedAmount,
		rate:         req.PercentageRate,
		applicableTo: normalizeApplicableTo(req.ApplicableTo),
	}
	if err := validateTier(fields); err != nil {
		return TierResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TierResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tier := &IncentiveTier{
		ID:                    uuid.New(),
		CompanyID:             companyUUID,
		Name:                  strings.TrimSpace(req.Name),
		MinAchievementPercent: fields.min.Round(4),
		MaxAchievementPercent: roundedPtr(fields.max, 4),
		RewardType:            fields.rewardType,
		FixedAmount:           roundedPtr(fields.fixedAmount, 2),
		PercentageRate:        roundedPtr(fields.rate, 4),
		ApplicableTo:          fields.applicableTo,
		SortOrder:             req.SortOrder,
		IsActive:              true,
		CreatedBy:             actorUUID,
	}

	if err := qtx.Create(ctx, tier); err != nil {
		return TierResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TierResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("incentive tier created",
		zap.String("tier_id", tier.ID.String()),
		zap.String("applicable_to", tier.ApplicableTo),
	)

	return mapTierToResponse(*tier), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetTiersFilterRequest) ([]TierResponse, error) {
	tiers, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]TierResponse, len(tiers))
	for i, t := range tiers {
		resp[i] = mapTierToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TierResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TierResponse{}, incentivetiererrors.ErrInvalidTierID
	}

	tier, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TierResponse{}, mapRepositoryError(err)
	}
	return mapTierToResponse(*tier), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateTierRequest) (TierResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TierResponse{}, incentivetiererrors.ErrInvalidTierID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TierResponse{}, incentivetiererrors.ErrInvalidActorID
	}

	fields := tierFields{
		min:          req.MinAchievementPercent,
		max:          req.MaxAchievementPercent,
		rewardType:   req.RewardType,
		fixedAmount:  req.FixedAmount,
		rate:         req.PercentageRate,
		applicableTo: normalizeApplicableTo(req.ApplicableTo),
	}
	if err := validateTier(fields); err != nil {
		return TierResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TierResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tier, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TierResponse{}, mapRepositoryError(err)
	}

	tier.Name = strings.TrimSpace(req.Name)
	tier.MinAchievementPercent = fields.min.Round(4)
	tier.MaxAchievementPercent = roundedPtr(fields.max, 4)
	tier.RewardType = fields.rewardType
	tier.FixedAmount = roundedPtr(fields.fixedAmount, 2)
	tier.PercentageRate = roundedPtr(fields.rate, 4)
	tier.ApplicableTo = fields.applicableTo
	tier.SortOrder = req.SortOrder
	if req.IsActive != nil {
		tier.IsActive = *req.IsActive
	}
	tier.UpdatedBy = &actorUUID

	if err := qtx.Update(ctx, tier); err != nil {
		return TierResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TierResponse{}, err
	}

	return mapTierToResponse(*tier), nil
}

// Deactivate hides a tier from matching. Awards keep their tier_name
// snapshot, so rows are never hard deleted.
func (s *service) Deactivate(ctx context.Context, companyID, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return incentivetiererrors.ErrInvalidTierID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return incentivetiererrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tier, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	tier.IsActive = false
	tier.UpdatedBy = &actorUUID
	if err := qtx.Update(ctx, tier); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Coverage(ctx context.Context, companyID, scope string) (Coverage, error) {
	registry, err := s.Registry(ctx, companyID)
	if err != nil {
		return Coverage{}, err
	}

	cov := registry.Coverage(normalizeApplicableTo(scope))
	if len(cov.Overlaps) > 0 || len(cov.Gaps) > 0 {
		contextutil.GetLogger(ctx, s.logger).Warn("incentive tier coverage is not a clean partition",
			zap.String("scope", cov.Scope),
			zap.Int("overlaps", len(cov.Overlaps)),
			zap.Int("gaps", len(cov.Gaps)),
		)
	}
	return cov, nil
}

func (s *service) Registry(ctx context.Context, companyID string) (*Registry, error) {
	tiers, err := s.repo.FindActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return NewRegistry(tiers), nil
}

func mapTierToResponse(t IncentiveTier) TierResponse {
	return TierResponse{
		ID:                    t.ID.String(),
		Name:                  t.Name,
		MinAchievementPercent: t.MinAchievementPercent,
		MaxAchievementPercent: t.MaxAchievementPercent,
		RewardType:            t.RewardType,
		FixedAmount:           t.FixedAmount,
		PercentageRate:        t.PercentageRate,
		ApplicableTo:          t.ApplicableTo,
		SortOrder:             t.SortOrder,
		IsActive:              t.IsActive,
		CreatedAt:             t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             t.UpdatedAt.Format(time.RFC3339),
	}
}
