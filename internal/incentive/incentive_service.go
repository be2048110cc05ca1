package incentive

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-bakery/internal/bootstrap"
	"go-bakery/internal/events"
	incentiveerrors "go-bakery/internal/incentive/errors"
	"go-bakery/internal/incentivetier"
	"go-bakery/internal/messaging/kafka"
	"go-bakery/internal/shared/apperror"
	"go-bakery/internal/shared/contextutil"
	"go-bakery/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	periodLayout = "2006-01"
	dateLayout   = "2006-01-02"

	percentPlaces int32 = 4

	defaultPageSize = 20
)

//go:generate mockgen -source=incentive_service.go -destination=mock/incentive_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, companyID, yearMonth string) ([]CalculatedAward, error)
	Commit(ctx context.Context, companyID, actorID string, req CommitAwardsRequest) (CommitAwardsResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (AwardResponse, error)
	Pay(ctx context.Context, companyID, actorID, id string) (AwardResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string, req CancelAwardRequest) (AwardResponse, error)
	AdjustFinalReward(ctx context.Context, companyID, actorID, id string, req AdjustFinalRewardRequest) (AwardResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetAwardsFilterRequest) ([]AwardResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (AwardResponse, error)
}

// TierRegistry loads the active tier snapshot of a company.
type TierRegistry interface {
	Registry(ctx context.Context, companyID string) (*incentivetier.Registry, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	tiers       TierRegistry
	counters    counter.Repository
	outbox      kafka.OutboxRepository
	audit       bootstrap.AuditLogger
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

type Option func(*service)

func WithOutbox(outbox kafka.OutboxRepository) Option {
	return func(s *service) { s.outbox = outbox }
}

func WithAuditLogger(audit bootstrap.AuditLogger) Option {
	return func(s *service) {
		if audit != nil {
			s.audit = audit
		}
	}
}

// WithConcurrency bounds how many branches Calculate evaluates at once.
func WithConcurrency(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("incentive.service")
		}
	}
}

func NewService(db *sql.DB, repo Repository, tiers TierRegistry, counters counter.Repository, opts ...Option) Service {
	s := &service{
		db:          db,
		repo:        repo,
		tiers:       tiers,
		counters:    counters,
		audit:       bootstrap.NopAuditLogger{},
		concurrency: 8,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      zap.L().Named("incentive.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParsePeriod turns YYYY-MM into the first and last calendar day of that month.
func ParsePeriod(yearMonth string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(periodLayout, strings.TrimSpace(yearMonth), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, incentiveerrors.ErrInvalidPeriod
	}
	return start, start.AddDate(0, 1, -1), nil
}

func (s *service) Calculate(ctx context.Context, companyID, yearMonth string) ([]CalculatedAward, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, incentiveerrors.ErrInvalidCompanyID
	}
	periodStart, periodEnd, err := ParsePeriod(yearMonth)
	if err != nil {
		return nil, err
	}
	salesTo := periodStart.AddDate(0, 1, 0)

	registry, err := s.tiers.Registry(ctx, companyID)
	if err != nil {
		return nil, err
	}

	branches, err := s.repo.ActiveBranches(ctx, companyID)
	if err != nil {
		return nil, err
	}

	branchIDs := make([]uuid.UUID, len(branches))
	for i, b := range branches {
		branchIDs[i] = b.ID
	}
	existing, err := s.repo.FindByKeys(ctx, companyID, periodStart, periodEnd, branchIDs)
	if err != nil {
		return nil, err
	}
	existingByBranch := make(map[uuid.UUID]IncentiveAward, len(existing))
	for _, a := range existing {
		existingByBranch[a.BranchID] = a
	}

	results := make([]CalculatedAward, len(branches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, branch := range branches {
		g.Go(func() error {
			target, err := s.repo.TargetFor(gctx, companyID, branch.ID.String(), periodStart)
			if err != nil {
				return fmt.Errorf("load sales target for branch %s: %w", branch.ID, err)
			}
			achieved, err := s.repo.AchievedFor(gctx, companyID, branch.ID.String(), periodStart, salesTo)
			if err != nil {
				return fmt.Errorf("load sales for branch %s: %w", branch.ID, err)
			}

			proposal := propose(branch, registry, target, achieved)
			proposal.PeriodStart = periodStart.Format(dateLayout)
			proposal.PeriodEnd = periodEnd.Format(dateLayout)
			if award, ok := existingByBranch[branch.ID]; ok {
				id := award.ID.String()
				proposal.Status = award.Status
				proposal.ExistingAwardID = &id
			}
			results[i] = proposal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].BranchName != results[j].BranchName {
			return results[i].BranchName < results[j].BranchName
		}
		return results[i].BranchID < results[j].BranchID
	})

	log := contextutil.GetLogger(ctx, s.logger)
	for _, r := range results {
		for _, w := range r.Warnings {
			log.Warn("incentive proposal warning",
				zap.String("branch_id", r.BranchID),
				zap.String("period", yearMonth),
				zap.String("warning", w),
			)
		}
	}

	return results, nil
}

// propose runs achievement, tier matching and reward for one branch.
func propose(branch Branch, registry *incentivetier.Registry, target, achieved decimal.Decimal) CalculatedAward {
	pct := ResolveAchievement(target, achieved)

	proposal := CalculatedAward{
		BranchID:           branch.ID.String(),
		BranchName:         branch.Name,
		BranchClass:        branch.BranchClass,
		TargetAmount:       target,
		AchievedAmount:     achieved,
		AchievementPercent: pct.Round(percentPlaces),
		CalculatedReward:   decimal.Zero,
		Status:             StatusPending,
		Warnings:           []string{},
	}

	tier, ok := registry.Match(pct, branch.BranchClass)
	if !ok {
		proposal.Warnings = append(proposal.Warnings, WarningNoMatchingTier)
		return proposal
	}

	tierID := tier.ID.String()
	tierName := tier.Name
	proposal.TierID = &tierID
	proposal.TierName = &tierName

	reward := CalculateReward(*tier, target, achieved)
	proposal.CalculatedReward = reward.Amount
	if reward.RoundedToZero {
		proposal.Warnings = append(proposal.Warnings, WarningRewardRoundedToZero)
	}
	return proposal
}

func (s *service) Commit(ctx context.Context, companyID, actorID string, req CommitAwardsRequest) (CommitAwardsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CommitAwardsResponse{}, incentiveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CommitAwardsResponse{}, incentiveerrors.ErrInvalidActorID
	}

	periodStart, err := time.ParseInLocation(dateLayout, req.PeriodStart, time.UTC)
	if err != nil {
		return CommitAwardsResponse{}, incentiveerrors.ErrInvalidPeriodRange
	}
	periodEnd, err := time.ParseInLocation(dateLayout, req.PeriodEnd, time.UTC)
	if err != nil {
		return CommitAwardsResponse{}, incentiveerrors.ErrInvalidPeriodRange
	}
	if !isCalendarMonth(periodStart, periodEnd) {
		return CommitAwardsResponse{}, incentiveerrors.ErrInvalidPeriodRange.WithDetail(
			fmt.Sprintf("award period must span one calendar month, got %s to %s", req.PeriodStart, req.PeriodEnd),
			map[string]string{"period_start": req.PeriodStart, "period_end": req.PeriodEnd},
		)
	}
	if len(req.Awards) == 0 {
		return CommitAwardsResponse{}, incentiveerrors.ErrEmptyCommit
	}

	branchIDs := make([]uuid.UUID, 0, len(req.Awards))
	seen := make(map[uuid.UUID]struct{}, len(req.Awards))
	for _, item := range req.Awards {
		branchID, err := uuid.Parse(item.BranchID)
		if err != nil {
			return CommitAwardsResponse{}, incentiveerrors.ErrInvalidBranchID
		}
		if _, dup := seen[branchID]; dup {
			return CommitAwardsResponse{}, incentiveerrors.ErrDuplicateBranchInBatch
		}
		seen[branchID] = struct{}{}

		if item.TargetAmount.IsNegative() || item.AchievedAmount.IsNegative() {
			return CommitAwardsResponse{}, incentiveerrors.ErrNegativeAmount
		}
		if item.TierID != nil {
			if _, err := uuid.Parse(*item.TierID); err != nil {
				return CommitAwardsResponse{}, incentiveerrors.ErrInvalidTierID
			}
		}
		branchIDs = append(branchIDs, branchID)
	}

	registry, err := s.tiers.Registry(ctx, companyID)
	if err != nil {
		return CommitAwardsResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CommitAwardsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ctr := s.counters.WithTx(tx)

	branches, err := qtx.FindBranches(ctx, companyID, branchIDs)
	if err != nil {
		return CommitAwardsResponse{}, err
	}
	branchByID := make(map[uuid.UUID]Branch, len(branches))
	for _, b := range branches {
		branchByID[b.ID] = b
	}
	for _, id := range branchIDs {
		if _, ok := branchByID[id]; !ok {
			return CommitAwardsResponse{}, incentiveerrors.ErrBranchNotFound.WithDetail(
				fmt.Sprintf("branch %s not found", id), map[string]string{"branch_id": id.String()},
			)
		}
	}

	existing, err := qtx.FindByKeys(ctx, companyID, periodStart, periodEnd, branchIDs)
	if err != nil {
		return CommitAwardsResponse{}, err
	}
	if len(existing) > 0 {
		return CommitAwardsResponse{}, incentiveerrors.DuplicateAwardPeriod(conflictKeys(existing))
	}

	now := s.now()
	awards := make([]IncentiveAward, 0, len(req.Awards))
	for i, item := range req.Awards {
		branch := branchByID[branchIDs[i]]

		award, err := s.buildAward(registry, branch, item)
		if err != nil {
			return CommitAwardsResponse{}, err
		}

		seq, err := ctr.GetNextValue(ctx, companyID, counter.TypeIncentiveAward)
		if err != nil {
			return CommitAwardsResponse{}, err
		}

		award.ID = uuid.New()
		award.CompanyID = companyUUID
		award.AwardNumber = counter.FormatNumber(AwardNumberPrefix, periodStart, seq)
		award.PeriodStart = periodStart
		award.PeriodEnd = periodEnd
		award.Status = StatusPending
		award.Version = 1
		award.CreatedBy = actorUUID
		award.CreatedAt = now
		award.UpdatedAt = now
		awards = append(awards, award)
	}

	if err := qtx.CreateBatch(ctx, awards); err != nil {
		return CommitAwardsResponse{}, mapRepositoryError(err)
	}

	ids := make([]string, len(awards))
	for i, a := range awards {
		ids[i] = a.ID.String()
	}
	if err := s.enqueue(ctx, tx, "incentive_award_batch", ids[0], events.IncentiveAwardCommittedEvent{
		EventType:   events.EventTypeAwardCommitted,
		CompanyID:   companyID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		AwardIDs:    ids,
		CommittedBy: actorID,
		OccurredAt:  now,
	}); err != nil {
		return CommitAwardsResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CommitAwardsResponse{}, mapRepositoryError(err)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:    bootstrap.AuditActionAwardCommitted,
		Message:   fmt.Sprintf("committed %d incentive awards for %s to %s", len(awards), req.PeriodStart, req.PeriodEnd),
		CompanyID: companyID,
		ActorID:   actorID,
		Meta:      map[string]any{"award_ids": ids},
	})

	resp := CommitAwardsResponse{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Awards:      make([]AwardResponse, len(awards)),
	}
	for i, a := range awards {
		resp.Awards[i] = mapAwardToResponse(a)
	}
	return resp, nil
}

// buildAward recomputes achievement, tier and reward so a client can never
// pick its own tier or reward figure. A submitted tier_id is only accepted
// when it is the tier the matcher selects; without one the matched tier is
// used.
func (s *service) buildAward(registry *incentivetier.Registry, branch Branch, item CommitAwardItem) (IncentiveAward, error) {
	pct := ResolveAchievement(item.TargetAmount, item.AchievedAmount)

	award := IncentiveAward{
		BranchID:           branch.ID,
		TargetAmount:       item.TargetAmount.Round(MoneyPlaces),
		AchievedAmount:     item.AchievedAmount.Round(MoneyPlaces),
		AchievementPercent: pct.Round(percentPlaces),
		CalculatedReward:   decimal.Zero,
		FinalReward:        decimal.Zero,
	}

	matched, found := registry.Match(pct, branch.BranchClass)

	if item.TierID != nil {
		submitted, ok := registry.Find(*item.TierID)
		if !ok {
			return IncentiveAward{}, incentiveerrors.ErrTierNotFound.WithDetail(
				fmt.Sprintf("incentive tier %s is not active for this company", *item.TierID),
				map[string]string{"tier_id": *item.TierID},
			)
		}
		if !found || submitted.ID != matched.ID {
			expected := ""
			if found {
				expected = matched.ID.String()
			}
			return IncentiveAward{}, incentiveerrors.ErrTierMismatch.WithDetail(
				fmt.Sprintf("tier %s is not the tier selected for %s%% at branch %s", submitted.Name, pct.Round(percentPlaces), branch.Name),
				map[string]string{"tier_id": *item.TierID, "matched_tier_id": expected, "branch_id": branch.ID.String()},
			)
		}
	}

	if !found {
		s.logger.Warn("no incentive tier matches committed award",
			zap.String("branch_id", branch.ID.String()),
			zap.String("achievement_percent", pct.Round(percentPlaces).String()),
		)
		return award, nil
	}

	reward := CalculateReward(*matched, item.TargetAmount, item.AchievedAmount)
	tierID := matched.ID
	tierName := matched.Name
	award.TierID = &tierID
	award.TierName = &tierName
	award.CalculatedReward = reward.Amount
	award.FinalReward = reward.Amount
	return award, nil
}

// isCalendarMonth reports whether start..end is exactly one month, first to
// last day inclusive. Awards are keyed on these bounds, so any other range
// would open a second key for the same month.
func isCalendarMonth(start, end time.Time) bool {
	return start.Day() == 1 && end.Equal(start.AddDate(0, 1, -1))
}

func conflictKeys(awards []IncentiveAward) []incentiveerrors.ConflictKey {
	keys := make([]incentiveerrors.ConflictKey, len(awards))
	for i, a := range awards {
		keys[i] = incentiveerrors.ConflictKey{
			BranchID:        a.BranchID.String(),
			PeriodStart:     a.PeriodStart.Format(dateLayout),
			PeriodEnd:       a.PeriodEnd.Format(dateLayout),
			ExistingAwardID: a.ID.String(),
		}
	}
	return keys
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (AwardResponse, error) {
	return s.transition(ctx, companyID, actorID, id, EventApprove, func(a *IncentiveAward, actor uuid.UUID, at time.Time) {
		a.ApprovedBy = &actor
		a.ApprovedAt = &at
	})
}

func (s *service) Pay(ctx context.Context, companyID, actorID, id string) (AwardResponse, error) {
	return s.transition(ctx, companyID, actorID, id, EventPay, func(a *IncentiveAward, actor uuid.UUID, at time.Time) {
		a.PaidBy = &actor
		a.PaidAt = &at
	})
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string, req CancelAwardRequest) (AwardResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	return s.transition(ctx, companyID, actorID, id, EventCancel, func(a *IncentiveAward, actor uuid.UUID, at time.Time) {
		a.CancelledBy = &actor
		a.CancelledAt = &at
		if reason != "" {
			a.CancelReason = &reason
		}
	})
}

var auditActions = map[string]string{
	EventApprove: bootstrap.AuditActionAwardApproved,
	EventPay:     bootstrap.AuditActionAwardPaid,
	EventCancel:  bootstrap.AuditActionAwardCancelled,
}

func (s *service) transition(
	ctx context.Context,
	companyID, actorID, id, event string,
	stamp func(a *IncentiveAward, actor uuid.UUID, at time.Time),
) (AwardResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AwardResponse{}, incentiveerrors.ErrInvalidAwardID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AwardResponse{}, incentiveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AwardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	award, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AwardResponse{}, mapRepositoryError(err)
	}

	fsm, err := NewAwardStateMachine(id, award.Status)
	if err != nil {
		return AwardResponse{}, err
	}
	next, ok := fsm.Fire(event)
	if !ok {
		return AwardResponse{}, incentiveerrors.InvalidStateTransition(award.ID.String(), award.Status, event)
	}

	fromStatus, fromVersion := award.Status, award.Version
	now := s.now()

	award.Status = next
	award.Version = fromVersion + 1
	award.UpdatedAt = now
	stamp(award, actorUUID, now)

	updated, err := qtx.UpdateGuarded(ctx, award, fromStatus, fromVersion)
	if err != nil {
		return AwardResponse{}, err
	}
	if !updated {
		return AwardResponse{}, apperror.ErrConcurrentModification
	}

	if err := s.enqueue(ctx, tx, "incentive_award", award.ID.String(), events.IncentiveAwardStatusChangedEvent{
		EventType:   events.EventTypeAwardStatusChanged,
		CompanyID:   companyID,
		AwardID:     award.ID.String(),
		AwardNumber: award.AwardNumber,
		BranchID:    award.BranchID.String(),
		FromStatus:  fromStatus,
		ToStatus:    next,
		FinalReward: award.FinalReward,
		ChangedBy:   actorID,
		OccurredAt:  now,
	}); err != nil {
		return AwardResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AwardResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:    auditActions[event],
		Message:   fmt.Sprintf("incentive award %s moved from %s to %s", award.AwardNumber, fromStatus, next),
		CompanyID: companyID,
		ActorID:   actorID,
		EntityID:  award.ID.String(),
	})

	return mapAwardToResponse(*award), nil
}

func (s *service) AdjustFinalReward(
	ctx context.Context,
	companyID, actorID, id string,
	req AdjustFinalRewardRequest,
) (AwardResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AwardResponse{}, incentiveerrors.ErrInvalidAwardID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return AwardResponse{}, incentiveerrors.ErrInvalidActorID
	}
	if req.FinalReward == nil || req.FinalReward.IsNegative() {
		return AwardResponse{}, incentiveerrors.ErrNegativeAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AwardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	award, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AwardResponse{}, mapRepositoryError(err)
	}
	if !IsMutable(award.Status) {
		return AwardResponse{}, incentiveerrors.ErrRewardFrozen.WithDetail(
			fmt.Sprintf("final reward of incentive award %s is frozen while it is %s", award.AwardNumber, award.Status),
			incentiveerrors.TransitionDetail{AwardID: award.ID.String(), CurrentStatus: award.Status, Action: "adjust_final_reward"},
		)
	}

	previous := award.FinalReward
	fromVersion := award.Version

	award.FinalReward = req.FinalReward.Round(MoneyPlaces)
	if note := strings.TrimSpace(req.Note); note != "" {
		award.AdjustmentNote = &note
	}
	award.Version = fromVersion + 1
	award.UpdatedAt = s.now()

	updated, err := qtx.UpdateGuarded(ctx, award, award.Status, fromVersion)
	if err != nil {
		return AwardResponse{}, err
	}
	if !updated {
		return AwardResponse{}, apperror.ErrConcurrentModification
	}

	if err := tx.Commit(); err != nil {
		return AwardResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:    bootstrap.AuditActionRewardAdjusted,
		Message:   fmt.Sprintf("final reward of %s changed from %s to %s", award.AwardNumber, previous.StringFixed(2), award.FinalReward.StringFixed(2)),
		CompanyID: companyID,
		ActorID:   actorID,
		EntityID:  award.ID.String(),
	})

	return mapAwardToResponse(*award), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, req GetAwardsFilterRequest) ([]AwardResponse, int64, error) {
	filter := AwardFilter{
		Status:   req.Status,
		BranchID: req.BranchID,
	}
	if req.Period != "" {
		start, _, err := ParsePeriod(req.Period)
		if err != nil {
			return nil, 0, err
		}
		filter.PeriodStart = &start
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	filter.Offset = (page - 1) * limit
	filter.Limit = limit

	awards, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]AwardResponse, len(awards))
	for i, a := range awards {
		resp[i] = mapAwardToResponse(a)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (AwardResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AwardResponse{}, incentiveerrors.ErrInvalidAwardID
	}

	award, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AwardResponse{}, mapRepositoryError(err)
	}
	return mapAwardToResponse(*award), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID string, payload any) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewOutboxEvent(
		events.IncentiveAwardTopic,
		eventTypeOf(payload),
		aggregateType,
		aggregateID,
		contextutil.GetRequestID(ctx),
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func eventTypeOf(payload any) string {
	switch p := payload.(type) {
	case events.IncentiveAwardCommittedEvent:
		return p.EventType
	case events.IncentiveAwardStatusChangedEvent:
		return p.EventType
	}
	return ""
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func formatUUIDPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapAwardToResponse(a IncentiveAward) AwardResponse {
	return AwardResponse{
		ID:                 a.ID.String(),
		AwardNumber:        a.AwardNumber,
		BranchID:           a.BranchID.String(),
		PeriodStart:        a.PeriodStart.Format(dateLayout),
		PeriodEnd:          a.PeriodEnd.Format(dateLayout),
		TargetAmount:       a.TargetAmount,
		AchievedAmount:     a.AchievedAmount,
		AchievementPercent: a.AchievementPercent,
		TierID:             formatUUIDPtr(a.TierID),
		TierName:           a.TierName,
		CalculatedReward:   a.CalculatedReward,
		FinalReward:        a.FinalReward,
		AdjustmentNote:     a.AdjustmentNote,
		Status:             a.Status,
		Version:            a.Version,
		CreatedBy:          a.CreatedBy.String(),
		ApprovedBy:         formatUUIDPtr(a.ApprovedBy),
		ApprovedAt:         formatTimePtr(a.ApprovedAt),
		PaidBy:             formatUUIDPtr(a.PaidBy),
		PaidAt:             formatTimePtr(a.PaidAt),
		CancelledBy:        formatUUIDPtr(a.CancelledBy),
		CancelledAt:        formatTimePtr(a.CancelledAt),
		CancelReason:       a.CancelReason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
}
