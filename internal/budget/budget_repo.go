package budget

import (
	"context"
	"database/sql"

	"go-bakery/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=budget_repo.go -destination=mock/budget_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpsertAllocation(ctx context.Context, allocation *BudgetAllocation) error
	FindAllocation(ctx context.Context, companyID, projectID, categoryID string) (*BudgetAllocation, error)
	FindAllocations(ctx context.Context, companyID, projectID string) ([]BudgetAllocation, error)
	FindProject(ctx context.Context, companyID, projectID string) (*ConstructionProject, error)
	FindWorkItems(ctx context.Context, companyID, projectID string) ([]ProjectWorkItem, error)
	FindPaymentRequests(ctx context.Context, companyID, projectID string) ([]PaymentRequest, error)
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

// UpsertAllocation keeps one row per (project, category); a second write
// replaces the planned amount.
func (r *repository) UpsertAllocation(ctx context.Context, allocation *BudgetAllocation) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"planned_amount", "updated_by", "updated_at"}),
		}).
		Create(allocation).Error
}

func (r *repository) FindAllocation(ctx context.Context, companyID, projectID, categoryID string) (*BudgetAllocation, error) {
	var allocation BudgetAllocation
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("project_id = ? AND category_id = ?", projectID, categoryID).
		First(&allocation).Error
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *repository) FindAllocations(ctx context.Context, companyID, projectID string) ([]BudgetAllocation, error) {
	var allocations []BudgetAllocation
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("project_id = ?", projectID).
		Order("category_id ASC").
		Find(&allocations).Error
	return allocations, err
}

func (r *repository) FindProject(ctx context.Context, companyID, projectID string) (*ConstructionProject, error) {
	var project ConstructionProject
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&project, "id = ?", projectID).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repository) FindWorkItems(ctx context.Context, companyID, projectID string) ([]ProjectWorkItem, error) {
	var items []ProjectWorkItem
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("project_id = ?", projectID).
		Find(&items).Error
	return items, err
}

// FindPaymentRequests returns every status; costing decides which count.
func (r *repository) FindPaymentRequests(ctx context.Context, companyID, projectID string) ([]PaymentRequest, error) {
	var payments []PaymentRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("project_id = ?", projectID).
		Find(&payments).Error
	return payments, err
}
