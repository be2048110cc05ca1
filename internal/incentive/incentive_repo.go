package incentive

import (
	"context"
	"database/sql"
	"time"

	"go-bakery/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AwardFilter struct {
	PeriodStart *time.Time
	Status      string
	BranchID    string
	Offset      int
	Limit       int
}

//go:generate mockgen -source=incentive_repo.go -destination=mock/incentive_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, awards []IncentiveAward) error
	FindByKeys(ctx context.Context, companyID string, periodStart, periodEnd time.Time, branchIDs []uuid.UUID) ([]IncentiveAward, error)
	FindAll(ctx context.Context, companyID string, filter AwardFilter) ([]IncentiveAward, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*IncentiveAward, error)
	UpdateGuarded(ctx context.Context, award *IncentiveAward, expectedStatus string, expectedVersion int) (bool, error)
	ActiveBranches(ctx context.Context, companyID string) ([]Branch, error)
	FindBranches(ctx context.Context, companyID string, ids []uuid.UUID) ([]Branch, error)
	TargetFor(ctx context.Context, companyID, branchID string, periodStart time.Time) (decimal.Decimal, error)
	AchievedFor(ctx context.Context, companyID, branchID string, from, to time.Time) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateBatch(ctx context.Context, awards []IncentiveAward) error {
	if len(awards) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&awards).Error
}

func (r *repository) FindByKeys(
	ctx context.Context,
	companyID string,
	periodStart, periodEnd time.Time,
	branchIDs []uuid.UUID,
) ([]IncentiveAward, error) {
	var awards []IncentiveAward
	if len(branchIDs) == 0 {
		return awards, nil
	}

	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("branch_id IN ?", branchIDs).
		Where("period_start = ? AND period_end = ?", periodStart, periodEnd).
		Order("branch_id ASC").
		Find(&awards).Error
	return awards, err
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter AwardFilter) ([]IncentiveAward, int64, error) {
	q := r.conn(ctx).Model(&IncentiveAward{}).Scopes(tenant.Scope(companyID))
	if filter.PeriodStart != nil {
		q = q.Where("period_start = ?", *filter.PeriodStart)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var awards []IncentiveAward
	q = q.Order("period_start DESC, award_number ASC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := q.Find(&awards).Error; err != nil {
		return nil, 0, err
	}
	return awards, total, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*IncentiveAward, error) {
	var award IncentiveAward
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&award).Error
	if err != nil {
		return nil, err
	}
	return &award, nil
}

// UpdateGuarded writes the mutable columns only when the stored row still
// has expectedStatus and expectedVersion. It reports false when another
// writer got there first.
func (r *repository) UpdateGuarded(ctx context.Context, award *IncentiveAward, expectedStatus string, expectedVersion int) (bool, error) {
	res := r.conn(ctx).
		Model(&IncentiveAward{}).
		Where("id = ? AND company_id = ? AND status = ? AND version = ?",
			award.ID, award.CompanyID, expectedStatus, expectedVersion).
		Updates(map[string]any{
			"status":          award.Status,
			"final_reward":    award.FinalReward,
			"adjustment_note": award.AdjustmentNote,
			"version":         award.Version,
			"approved_by":     award.ApprovedBy,
			"approved_at":     award.ApprovedAt,
			"paid_by":         award.PaidBy,
			"paid_at":         award.PaidAt,
			"cancelled_by":    award.CancelledBy,
			"cancelled_at":    award.CancelledAt,
			"cancel_reason":   award.CancelReason,
			"updated_at":      award.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ActiveBranches(ctx context.Context, companyID string) ([]Branch, error) {
	var branches []Branch
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

func (r *repository) FindBranches(ctx context.Context, companyID string, ids []uuid.UUID) ([]Branch, error) {
	var branches []Branch
	if len(ids) == 0 {
		return branches, nil
	}
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Find(&branches).Error
	return branches, err
}

func (r *repository) TargetFor(ctx context.Context, companyID, branchID string, periodStart time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(ctx).
		Model(&SalesTarget{}).
		Scopes(tenant.Scope(companyID)).
		Select("COALESCE(SUM(target_amount), 0)").
		Where("branch_id = ? AND period_start = ?", branchID, periodStart).
		Row().
		Scan(&total)
	return total, err
}

// AchievedFor sums completed sales in [from, to).
func (r *repository) AchievedFor(ctx context.Context, companyID, branchID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(ctx).
		Model(&SalesTransaction{}).
		Scopes(tenant.Scope(companyID)).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("branch_id = ? AND status = ?", branchID, SalesStatusCompleted).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Row().
		Scan(&total)
	return total, err
}
