package budget

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	budgeterrors "go-bakery/internal/budget/errors"
	"go-bakery/internal/costing"
	"go-bakery/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=budget_service.go -destination=mock/budget_service_mock.go -package=mock
type Service interface {
	UpsertAllocation(ctx context.Context, companyID, actorID, projectID string, req UpsertAllocationRequest) (AllocationResponse, error)
	GetAllocations(ctx context.Context, companyID, projectID string) ([]AllocationResponse, error)
	GetReconciledActualCost(ctx context.Context, companyID, projectID string, categoryID *string) (ActualCostResponse, error)
	GetVarianceReport(ctx context.Context, companyID, projectID string) (VarianceReportResponse, error)
	InvalidateProject(ctx context.Context, companyID, projectID string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	reconciler *costing.Reconciler
	rdb        *redis.Client
	cacheTTL   time.Duration
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithCache(db, repo, nil, 0, logger...)
}

// NewServiceWithCache caches variance reports in redis for ttl. A nil
// client or non-positive ttl disables caching.
func NewServiceWithCache(db *sql.DB, repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("budget.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("budget.service")
	}

	return &service{
		db:         db,
		repo:       repo,
		reconciler: costing.NewReconciler(costing.MaxOfSources),
		rdb:        rdb,
		cacheTTL:   ttl,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func VarianceCacheKey(companyID, projectID string) string {
	return fmt.Sprintf("budget:variance:%s:%s", companyID, projectID)
}

func (s *service) UpsertAllocation(
	ctx context.Context,
	companyID, actorID, projectID string,
	req UpsertAllocationRequest,
) (AllocationResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AllocationResponse{}, budgeterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AllocationResponse{}, budgeterrors.ErrInvalidActorID
	}
	projectUUID, err := uuid.Parse(projectID)
	if err != nil {
		return AllocationResponse{}, budgeterrors.ErrInvalidProjectID
	}
	categoryUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return AllocationResponse{}, budgeterrors.ErrInvalidCategoryID
	}
	if req.PlannedAmount.IsNegative() {
		return AllocationResponse{}, budgeterrors.ErrInvalidMoneyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AllocationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindProject(ctx, companyID, projectID); err != nil {
		return AllocationResponse{}, mapRepositoryError(err)
	}

	allocation := &BudgetAllocation{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		ProjectID:     projectUUID,
		CategoryID:    categoryUUID,
		PlannedAmount: req.PlannedAmount.Round(2),
		UpdatedBy:     actorUUID,
	}
	if err := qtx.UpsertAllocation(ctx, allocation); err != nil {
		return AllocationResponse{}, err
	}

	stored, err := qtx.FindAllocation(ctx, companyID, projectID, req.CategoryID)
	if err != nil {
		return AllocationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AllocationResponse{}, err
	}

	if err := s.InvalidateProject(ctx, companyID, projectID); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("invalidate variance cache failed",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
	}

	return mapAllocationToResponse(*stored), nil
}

func (s *service) GetAllocations(ctx context.Context, companyID, projectID string) ([]AllocationResponse, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, budgeterrors.ErrInvalidProjectID
	}
	if _, err := s.repo.FindProject(ctx, companyID, projectID); err != nil {
		return nil, mapRepositoryError(err)
	}

	allocations, err := s.repo.FindAllocations(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	resp := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		resp[i] = mapAllocationToResponse(a)
	}
	return resp, nil
}

func (s *service) GetReconciledActualCost(
	ctx context.Context,
	companyID, projectID string,
	categoryID *string,
) (ActualCostResponse, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return ActualCostResponse{}, budgeterrors.ErrInvalidProjectID
	}
	if categoryID != nil {
		if _, err := uuid.Parse(*categoryID); err != nil {
			return ActualCostResponse{}, budgeterrors.ErrInvalidCategoryID
		}
	}
	if _, err := s.repo.FindProject(ctx, companyID, projectID); err != nil {
		return ActualCostResponse{}, mapRepositoryError(err)
	}

	workItems, payments, err := s.loadCostTotals(ctx, companyID, projectID)
	if err != nil {
		return ActualCostResponse{}, err
	}

	var fig costing.Figure
	if categoryID != nil {
		fig = s.reconciler.Category(workItems, payments, projectID, *categoryID)
	} else {
		fig = s.reconciler.Project(workItems, payments, projectID)
	}

	return ActualCostResponse{
		ProjectID:  projectID,
		CategoryID: categoryID,
		ActualCost: fig.Actual,
		WorkItems:  fig.WorkItems,
		Payments:   fig.Payments,
		Source:     fig.Source,
	}, nil
}

func (s *service) GetVarianceReport(ctx context.Context, companyID, projectID string) (VarianceReportResponse, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return VarianceReportResponse{}, budgeterrors.ErrInvalidProjectID
	}

	log := contextutil.GetLogger(ctx, s.logger)
	cacheKey := VarianceCacheKey(companyID, projectID)

	if s.cacheEnabled() {
		cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var report VarianceReportResponse
			if jsonErr := json.Unmarshal(cached, &report); jsonErr == nil {
				return report, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("read variance cache failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	// Concurrent misses for one project share a single reconciliation. The
	// shared load must not die with whichever caller happened to start it.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(cacheKey, func() (any, error) {
		ctx := loadCtx
		project, err := s.repo.FindProject(ctx, companyID, projectID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		allocations, err := s.repo.FindAllocations(ctx, companyID, projectID)
		if err != nil {
			return nil, err
		}
		workItems, payments, err := s.loadCostTotals(ctx, companyID, projectID)
		if err != nil {
			return nil, err
		}

		report := s.buildVarianceReport(*project, allocations, workItems, payments)

		if s.cacheEnabled() {
			if payload, err := json.Marshal(report); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
					log.Warn("write variance cache failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return report, nil
	})

	select {
	case <-ctx.Done():
		return VarianceReportResponse{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return VarianceReportResponse{}, res.Err
		}
		return res.Val.(VarianceReportResponse), nil
	}
}

func (s *service) InvalidateProject(ctx context.Context, companyID, projectID string) error {
	if !s.cacheEnabled() {
		return nil
	}
	return s.rdb.Del(ctx, VarianceCacheKey(companyID, projectID)).Err()
}

func (s *service) cacheEnabled() bool {
	return s.rdb != nil && s.cacheTTL > 0
}

func (s *service) loadCostTotals(ctx context.Context, companyID, projectID string) (costing.Totals, costing.Totals, error) {
	items, err := s.repo.FindWorkItems(ctx, companyID, projectID)
	if err != nil {
		return costing.Totals{}, costing.Totals{}, err
	}
	payments, err := s.repo.FindPaymentRequests(ctx, companyID, projectID)
	if err != nil {
		return costing.Totals{}, costing.Totals{}, err
	}

	return costing.Aggregate(toWorkItemCosts(items)), costing.PaidTotals(toPaymentCosts(payments)), nil
}

func (s *service) buildVarianceReport(
	project ConstructionProject,
	allocations []BudgetAllocation,
	workItems, payments costing.Totals,
) VarianceReportResponse {
	projectID := project.ID.String()
	figures := s.reconciler.Categories(workItems, payments, projectID)

	planned := make(map[string]decimal.Decimal, len(allocations))
	plannedTotal := decimal.Zero
	for _, a := range allocations {
		planned[a.CategoryID.String()] = a.PlannedAmount
		plannedTotal = plannedTotal.Add(a.PlannedAmount)
	}

	categoryIDs := make([]string, 0, len(planned)+len(figures))
	for id := range planned {
		categoryIDs = append(categoryIDs, id)
	}
	for id := range figures {
		if _, ok := planned[id]; !ok {
			categoryIDs = append(categoryIDs, id)
		}
	}
	sort.Strings(categoryIDs)

	lines := make([]VarianceLineResponse, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		fig, ok := figures[id]
		if !ok {
			fig = costing.Figure{Source: costing.SourceEqual}
		}
		lines = append(lines, VarianceLineResponse{
			CategoryID: id,
			Source:     fig.Source,
			Variance:   CalculateVariance(planned[id], fig.Actual).Rounded(),
		})
	}

	projectFig := s.reconciler.Project(workItems, payments, projectID)

	return VarianceReportResponse{
		Project: ProjectSnapshotResponse{
			ID:                 projectID,
			Name:               project.Name,
			Budget:             project.Budget,
			RecordedActualCost: project.ActualCost,
			ReconciledDrift:    projectFig.Actual.Sub(project.ActualCost),
		},
		Lines: lines,
		Total: VarianceLineResponse{
			Source:   projectFig.Source,
			Variance: CalculateVariance(plannedTotal, projectFig.Actual).Rounded(),
		},
	}
}

func toWorkItemCosts(items []ProjectWorkItem) []costing.WorkItemCost {
	out := make([]costing.WorkItemCost, len(items))
	for i, item := range items {
		out[i] = costing.WorkItemCost{
			ProjectID:  item.ProjectID.String(),
			CategoryID: item.CategoryID.String(),
			ActualCost: item.ActualCost,
		}
	}
	return out
}

func toPaymentCosts(payments []PaymentRequest) []costing.PaymentCost {
	out := make([]costing.PaymentCost, len(payments))
	for i, p := range payments {
		var categoryID *string
		if p.CategoryID != nil {
			v := p.CategoryID.String()
			categoryID = &v
		}
		out[i] = costing.PaymentCost{
			ProjectID:  p.ProjectID.String(),
			CategoryID: categoryID,
			Amount:     p.Amount,
			Status:     p.Status,
		}
	}
	return out
}

func mapAllocationToResponse(a BudgetAllocation) AllocationResponse {
	return AllocationResponse{
		ID:            a.ID.String(),
		ProjectID:     a.ProjectID.String(),
		CategoryID:    a.CategoryID.String(),
		PlannedAmount: a.PlannedAmount,
		UpdatedBy:     a.UpdatedBy.String(),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}
