package incentivetier

import (
	"context"
	"database/sql"

	"go-bakery/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tier_repo.go -destination=mock/tier_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, tier *IncentiveTier) error
	FindAll(ctx context.Context, companyID string, filter GetTiersFilterRequest) ([]IncentiveTier, error)
	FindActive(ctx context.Context, companyID string) ([]IncentiveTier, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*IncentiveTier, error)
	Update(ctx context.Context, tier *IncentiveTier) error
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

func (r *repository) Create(ctx context.Context, tier *IncentiveTier) error {
	return r.conn(ctx).Create(tier).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter GetTiersFilterRequest) ([]IncentiveTier, error) {
	var tiers []IncentiveTier
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if filter.ApplicableTo != "" {
		q = q.Where("applicable_to = ?", filter.ApplicableTo)
	}
	err := q.Order("sort_order ASC, min_achievement_percent ASC, id ASC").Find(&tiers).Error
	return tiers, err
}

func (r *repository) FindActive(ctx context.Context, companyID string) ([]IncentiveTier, error) {
	return r.FindAll(ctx, companyID, GetTiersFilterRequest{})
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*IncentiveTier, error) {
	var tier IncentiveTier
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) Update(ctx context.Context, tier *IncentiveTier) error {
	return r.conn(ctx).Save(tier).Error
}
