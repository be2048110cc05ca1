package incentive_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"go-bakery/internal/bootstrap"
	"go-bakery/internal/incentive"
	incentiveerrors "go-bakery/internal/incentive/errors"
	"go-bakery/internal/incentivetier"
	"go-bakery/internal/messaging/kafka"
	"go-bakery/internal/shared/apperror"
	"go-bakery/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createBatchFn    func(ctx context.Context, awards []incentive.IncentiveAward) error
	findByKeysFn     func(ctx context.Context, companyID string, start, end time.Time, branchIDs []uuid.UUID) ([]incentive.IncentiveAward, error)
	findAllFn        func(ctx context.Context, companyID string, filter incentive.AwardFilter) ([]incentive.IncentiveAward, int64, error)
	findByIDFn       func(ctx context.Context, companyID, id string) (*incentive.IncentiveAward, error)
	updateGuardedFn  func(ctx context.Context, award *incentive.IncentiveAward, status string, version int) (bool, error)
	activeBranchesFn func(ctx context.Context, companyID string) ([]incentive.Branch, error)
	findBranchesFn   func(ctx context.Context, companyID string, ids []uuid.UUID) ([]incentive.Branch, error)
	targetForFn      func(ctx context.Context, companyID, branchID string, periodStart time.Time) (decimal.Decimal, error)
	achievedForFn    func(ctx context.Context, companyID, branchID string, from, to time.Time) (decimal.Decimal, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) incentive.Repository { return f }

func (f *fakeRepo) CreateBatch(ctx context.Context, awards []incentive.IncentiveAward) error {
	return f.createBatchFn(ctx, awards)
}

func (f *fakeRepo) FindByKeys(ctx context.Context, companyID string, start, end time.Time, branchIDs []uuid.UUID) ([]incentive.IncentiveAward, error) {
	if f.findByKeysFn == nil {
		return nil, nil
	}
	return f.findByKeysFn(ctx, companyID, start, end, branchIDs)
}

func (f *fakeRepo) FindAll(ctx context.Context, companyID string, filter incentive.AwardFilter) ([]incentive.IncentiveAward, int64, error) {
	return f.findAllFn(ctx, companyID, filter)
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*incentive.IncentiveAward, error) {
	return f.findByIDFn(ctx, companyID, id)
}

func (f *fakeRepo) UpdateGuarded(ctx context.Context, award *incentive.IncentiveAward, status string, version int) (bool, error) {
	return f.updateGuardedFn(ctx, award, status, version)
}

func (f *fakeRepo) ActiveBranches(ctx context.Context, companyID string) ([]incentive.Branch, error) {
	return f.activeBranchesFn(ctx, companyID)
}

func (f *fakeRepo) FindBranches(ctx context.Context, companyID string, ids []uuid.UUID) ([]incentive.Branch, error) {
	return f.findBranchesFn(ctx, companyID, ids)
}

func (f *fakeRepo) TargetFor(ctx context.Context, companyID, branchID string, periodStart time.Time) (decimal.Decimal, error) {
	return f.targetForFn(ctx, companyID, branchID, periodStart)
}

func (f *fakeRepo) AchievedFor(ctx context.Context, companyID, branchID string, from, to time.Time) (decimal.Decimal, error) {
	return f.achievedForFn(ctx, companyID, branchID, from, to)
}

type fakeTiers struct {
	tiers []incentivetier.IncentiveTier
	err   error
}

func (f fakeTiers) Registry(ctx context.Context, companyID string) (*incentivetier.Registry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return incentivetier.NewRegistry(f.tiers), nil
}

type fakeCounter struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeCounter) WithTx(tx *sql.Tx) counter.Repository { return f }

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type recordingAudit struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

var fixedNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type serviceFixture struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeRepo
	outbox  *fakeOutbox
	audit   *recordingAudit
	service incentive.Service
}

func setupService(t *testing.T, tiers []incentivetier.IncentiveTier) *serviceFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &serviceFixture{
		db:      db,
		sqlMock: sqlMock,
		repo:    &fakeRepo{},
		outbox:  &fakeOutbox{},
		audit:   &recordingAudit{},
	}
	f.service = incentive.NewService(db, f.repo, fakeTiers{tiers: tiers}, &fakeCounter{},
		incentive.WithOutbox(f.outbox),
		incentive.WithAuditLogger(f.audit),
		incentive.WithConcurrency(2),
		incentive.WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// bronze [80,100) percentage 5%, silver [100,120) fixed 250, gold [110,inf) both 500 + 5%
func bakeryTiers() []incentivetier.IncentiveTier {
	bronze := tier("Bronze", "80", decPtr("100"), incentivetier.RewardTypePercentage, nil, decPtr("5"))
	bronze.SortOrder = 1
	silver := tier("Silver", "100", decPtr("110"), incentivetier.RewardTypeFixed, decPtr("250"), nil)
	silver.SortOrder = 2
	gold := tier("Gold", "110", nil, incentivetier.RewardTypeBoth, decPtr("500"), decPtr("5"))
	gold.SortOrder = 3
	return []incentivetier.IncentiveTier{gold, bronze, silver}
}

func TestIncentiveService_Calculate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	north := incentive.Branch{ID: uuid.New(), Name: "North", BranchClass: "outlet", IsActive: true}
	central := incentive.Branch{ID: uuid.New(), Name: "Central", BranchClass: "flagship", IsActive: true}
	south := incentive.Branch{ID: uuid.New(), Name: "South", BranchClass: "outlet", IsActive: true}
	existingID := uuid.New()

	targets := map[string]string{north.ID.String(): "10000", central.ID.String(): "10000", south.ID.String(): "10000"}
	achieved := map[string]string{north.ID.String(): "12000", central.ID.String(): "9000", south.ID.String(): "5000"}

	f := setupService(t, bakeryTiers())
	f.repo.activeBranchesFn = func(ctx context.Context, cid string) ([]incentive.Branch, error) {
		assert.Equal(t, companyID, cid)
		return []incentive.Branch{north, central, south}, nil
	}
	f.repo.findByKeysFn = func(ctx context.Context, cid string, start, end time.Time, ids []uuid.UUID) ([]incentive.IncentiveAward, error) {
		assert.Equal(t, "2025-05-01", start.Format("2006-01-02"))
		assert.Equal(t, "2025-05-31", end.Format("2006-01-02"))
		assert.Len(t, ids, 3)
		return []incentive.IncentiveAward{{ID: existingID, BranchID: north.ID, Status: incentive.StatusApproved}}, nil
	}
	f.repo.targetForFn = func(ctx context.Context, cid, branchID string, periodStart time.Time) (decimal.Decimal, error) {
		return dec(targets[branchID]), nil
	}
	f.repo.achievedForFn = func(ctx context.Context, cid, branchID string, from, to time.Time) (decimal.Decimal, error) {
		assert.Equal(t, "2025-06-01", to.Format("2006-01-02"))
		return dec(achieved[branchID]), nil
	}

	got, err := f.service.Calculate(ctx, companyID, "2025-05")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Central", got[0].BranchName)
	assert.Equal(t, "Bronze", *got[0].TierName)
	assert.True(t, got[0].CalculatedReward.IsZero())
	assert.Equal(t, incentive.StatusPending, got[0].Status)

	assert.Equal(t, "North", got[1].BranchName)
	assert.Equal(t, "Gold", *got[1].TierName)
	assert.Equal(t, "600.00", got[1].CalculatedReward.StringFixed(2))
	assert.Equal(t, incentive.StatusApproved, got[1].Status)
	require.NotNil(t, got[1].ExistingAwardID)
	assert.Equal(t, existingID.String(), *got[1].ExistingAwardID)

	assert.Equal(t, "South", got[2].BranchName)
	assert.Nil(t, got[2].TierID)
	assert.Equal(t, []string{incentive.WarningNoMatchingTier}, got[2].Warnings)
	assert.Equal(t, "50.0000", got[2].AchievementPercent.StringFixed(4))
}

func TestIncentiveService_Calculate_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid period", func(t *testing.T) {
		f := setupService(t, nil)
		_, err := f.service.Calculate(ctx, uuid.New().String(), "2025-13")
		assert.ErrorIs(t, err, incentiveerrors.ErrInvalidPeriod)
	})

	t.Run("invalid company", func(t *testing.T) {
		f := setupService(t, nil)
		_, err := f.service.Calculate(ctx, "bakery", "2025-05")
		assert.ErrorIs(t, err, incentiveerrors.ErrInvalidCompanyID)
	})

	t.Run("sales lookup failure aborts", func(t *testing.T) {
		f := setupService(t, bakeryTiers())
		f.repo.activeBranchesFn = func(ctx context.Context, cid string) ([]incentive.Branch, error) {
			return []incentive.Branch{{ID: uuid.New(), Name: "North"}}, nil
		}
		f.repo.targetForFn = func(ctx context.Context, cid, branchID string, periodStart time.Time) (decimal.Decimal, error) {
			return decimal.Zero, errors.New("connection reset")
		}

		_, err := f.service.Calculate(ctx, uuid.New().String(), "2025-05")
		assert.ErrorContains(t, err, "connection reset")
	})
}

func commitRequest(branchID string, tierID *string) incentive.CommitAwardsRequest {
	return incentive.CommitAwardsRequest{
		PeriodStart: "2025-05-01",
		PeriodEnd:   "2025-05-31",
		Awards: []incentive.CommitAwardItem{{
			BranchID:       branchID,
			TargetAmount:   dec("10000"),
			AchievedAmount: dec("12000"),
			TierID:         tierID,
		}},
	}
}

func TestIncentiveService_Commit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	branch := incentive.Branch{ID: uuid.New(), Name: "North", BranchClass: "outlet"}

	tiers := bakeryTiers()
	goldID := tiers[0].ID.String()
	silverID := tiers[2].ID.String()

	t.Run("persists pending award with recomputed reward", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, true)

		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		var stored []incentive.IncentiveAward
		f.repo.createBatchFn = func(ctx context.Context, awards []incentive.IncentiveAward) error {
			stored = awards
			return nil
		}

		resp, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), &goldID))
		require.NoError(t, err)
		require.Len(t, resp.Awards, 1)
		require.Len(t, stored, 1)

		award := stored[0]
		assert.Equal(t, incentive.StatusPending, award.Status)
		assert.Equal(t, "INC-202505-0001", award.AwardNumber)
		assert.Equal(t, 1, award.Version)
		assert.Equal(t, "600.00", award.CalculatedReward.StringFixed(2))
		assert.True(t, award.FinalReward.Equal(award.CalculatedReward))
		assert.Equal(t, "120.0000", award.AchievementPercent.StringFixed(4))

		require.Len(t, f.outbox.events, 1)
		assert.Equal(t, "incentive_award.committed", f.outbox.events[0].EventType)
		require.Len(t, f.audit.entries, 1)
		assert.Equal(t, bootstrap.AuditActionAwardCommitted, f.audit.entries[0].Action)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects tier that does not cover achievement", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, false)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}

		_, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), &silverID))
		assert.ErrorIs(t, err, incentiveerrors.ErrTierMismatch)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("rejects a covering tier that is not the first match", func(t *testing.T) {
		standard := tier("Standard", "100", nil, incentivetier.RewardTypeFixed, decPtr("100"), nil)
		standard.SortOrder = 1
		premium := tier("Premium", "100", nil, incentivetier.RewardTypeFixed, decPtr("9000"), nil)
		premium.SortOrder = 2
		premiumID := premium.ID.String()

		f := setupService(t, []incentivetier.IncentiveTier{premium, standard})
		expectTx(t, f.sqlMock, false)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		f.repo.createBatchFn = func(ctx context.Context, awards []incentive.IncentiveAward) error {
			t.Fatal("award must not be stored")
			return nil
		}

		_, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), &premiumID))
		assert.ErrorIs(t, err, incentiveerrors.ErrTierMismatch)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("omitted tier takes the matched tier", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, true)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		var stored []incentive.IncentiveAward
		f.repo.createBatchFn = func(ctx context.Context, awards []incentive.IncentiveAward) error {
			stored = awards
			return nil
		}

		_, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), nil))
		require.NoError(t, err)
		require.Len(t, stored, 1)
		require.NotNil(t, stored[0].TierID)
		assert.Equal(t, goldID, stored[0].TierID.String())
		assert.Equal(t, "Gold", *stored[0].TierName)
		assert.Equal(t, "600.00", stored[0].CalculatedReward.StringFixed(2))
	})

	t.Run("no matching tier stores zero reward", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, true)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		var stored []incentive.IncentiveAward
		f.repo.createBatchFn = func(ctx context.Context, awards []incentive.IncentiveAward) error {
			stored = awards
			return nil
		}

		req := commitRequest(branch.ID.String(), nil)
		req.Awards[0].AchievedAmount = dec("5000")

		_, err := f.service.Commit(ctx, companyID, actorID, req)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Nil(t, stored[0].TierID)
		assert.True(t, stored[0].CalculatedReward.IsZero())
	})

	t.Run("tier submitted when none matches", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, false)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}

		req := commitRequest(branch.ID.String(), &goldID)
		req.Awards[0].AchievedAmount = dec("5000")

		_, err := f.service.Commit(ctx, companyID, actorID, req)
		assert.ErrorIs(t, err, incentiveerrors.ErrTierMismatch)
	})

	t.Run("rejects existing award for the same period", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, false)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		f.repo.findByKeysFn = func(ctx context.Context, cid string, start, end time.Time, ids []uuid.UUID) ([]incentive.IncentiveAward, error) {
			return []incentive.IncentiveAward{{ID: uuid.New(), BranchID: branch.ID, PeriodStart: start, PeriodEnd: end}}, nil
		}

		_, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), &goldID))
		require.ErrorIs(t, err, incentiveerrors.ErrDuplicateAwardPeriod)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		keys, ok := appErr.Details.([]incentiveerrors.ConflictKey)
		require.True(t, ok)
		assert.Equal(t, branch.ID.String(), keys[0].BranchID)
	})

	t.Run("maps unique violation from a concurrent commit", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, false)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		f.repo.createBatchFn = func(ctx context.Context, awards []incentive.IncentiveAward) error {
			return gorm.ErrDuplicatedKey
		}

		_, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), &goldID))
		assert.ErrorIs(t, err, incentiveerrors.ErrDuplicateAwardPeriod)
	})

	t.Run("unknown branch", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, false)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return nil, nil
		}

		_, err := f.service.Commit(ctx, companyID, actorID, commitRequest(branch.ID.String(), nil))
		assert.ErrorIs(t, err, incentiveerrors.ErrBranchNotFound)
	})

	t.Run("duplicate branch in batch", func(t *testing.T) {
		f := setupService(t, tiers)
		req := commitRequest(branch.ID.String(), nil)
		req.Awards = append(req.Awards, req.Awards[0])

		_, err := f.service.Commit(ctx, companyID, actorID, req)
		assert.ErrorIs(t, err, incentiveerrors.ErrDuplicateBranchInBatch)
	})

	t.Run("period end before start", func(t *testing.T) {
		f := setupService(t, tiers)
		req := commitRequest(branch.ID.String(), nil)
		req.PeriodEnd = "2025-04-30"

		_, err := f.service.Commit(ctx, companyID, actorID, req)
		assert.ErrorIs(t, err, incentiveerrors.ErrInvalidPeriodRange)
	})

	t.Run("period must be one calendar month", func(t *testing.T) {
		ranges := []struct{ start, end string }{
			{"2025-05-01", "2025-05-30"},
			{"2025-05-02", "2025-05-31"},
			{"2025-05-01", "2025-06-30"},
			{"2025-05-01", "2025-05-01"},
		}
		for _, r := range ranges {
			f := setupService(t, tiers)
			req := commitRequest(branch.ID.String(), nil)
			req.PeriodStart = r.start
			req.PeriodEnd = r.end

			_, err := f.service.Commit(ctx, companyID, actorID, req)
			assert.ErrorIs(t, err, incentiveerrors.ErrInvalidPeriodRange, "%s..%s", r.start, r.end)
		}
	})

	t.Run("february period", func(t *testing.T) {
		f := setupService(t, tiers)
		expectTx(t, f.sqlMock, true)
		f.repo.findBranchesFn = func(ctx context.Context, cid string, ids []uuid.UUID) ([]incentive.Branch, error) {
			return []incentive.Branch{branch}, nil
		}
		req := commitRequest(branch.ID.String(), nil)
		f.repo.createBatchFn = func(ctx context.Context, awards []incentive.IncentiveAward) error {
			assert.Equal(t, "2024-02-29", awards[0].PeriodEnd.Format("2006-01-02"))
			return nil
		}
		req.PeriodStart = "2024-02-01"
		req.PeriodEnd = "2024-02-29"

		_, err := f.service.Commit(ctx, companyID, actorID, req)
		assert.NoError(t, err)
	})

	t.Run("negative amounts", func(t *testing.T) {
		f := setupService(t, tiers)
		req := commitRequest(branch.ID.String(), nil)
		req.Awards[0].AchievedAmount = dec("-1")

		_, err := f.service.Commit(ctx, companyID, actorID, req)
		assert.ErrorIs(t, err, incentiveerrors.ErrNegativeAmount)
	})
}

func storedAward(companyID, status string) *incentive.IncentiveAward {
	return &incentive.IncentiveAward{
		ID:               uuid.New(),
		CompanyID:        uuid.MustParse(companyID),
		AwardNumber:      "INC-202505-0001",
		BranchID:         uuid.New(),
		Status:           status,
		Version:          3,
		CalculatedReward: dec("600"),
		FinalReward:      dec("600"),
		CreatedBy:        uuid.New(),
	}
}

func TestIncentiveService_Transitions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("approve pending award", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, true)

		award := storedAward(companyID, incentive.StatusPending)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return award, nil
		}
		f.repo.updateGuardedFn = func(ctx context.Context, a *incentive.IncentiveAward, status string, version int) (bool, error) {
			assert.Equal(t, incentive.StatusPending, status)
			assert.Equal(t, 3, version)
			assert.Equal(t, 4, a.Version)
			return true, nil
		}

		resp, err := f.service.Approve(ctx, companyID, actorID, award.ID.String())
		require.NoError(t, err)
		assert.Equal(t, incentive.StatusApproved, resp.Status)
		require.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)
		require.Len(t, f.outbox.events, 1)
		assert.Equal(t, bootstrap.AuditActionAwardApproved, f.audit.entries[0].Action)
	})

	t.Run("pay requires approval", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, false)

		award := storedAward(companyID, incentive.StatusPending)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return award, nil
		}

		_, err := f.service.Pay(ctx, companyID, actorID, award.ID.String())
		require.ErrorIs(t, err, incentiveerrors.ErrInvalidStateTransition)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		detail, ok := appErr.Details.(incentiveerrors.TransitionDetail)
		require.True(t, ok)
		assert.Equal(t, incentive.StatusPending, detail.CurrentStatus)
		assert.Equal(t, incentive.EventPay, detail.Action)
	})

	t.Run("cancel paid award is rejected", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, false)

		award := storedAward(companyID, incentive.StatusPaid)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return award, nil
		}

		_, err := f.service.Cancel(ctx, companyID, actorID, award.ID.String(), incentive.CancelAwardRequest{Reason: "typo"})
		assert.ErrorIs(t, err, incentiveerrors.ErrInvalidStateTransition)
	})

	t.Run("lost race reports concurrent modification", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, false)

		award := storedAward(companyID, incentive.StatusApproved)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return award, nil
		}
		f.repo.updateGuardedFn = func(ctx context.Context, a *incentive.IncentiveAward, status string, version int) (bool, error) {
			return false, nil
		}

		_, err := f.service.Cancel(ctx, companyID, actorID, award.ID.String(), incentive.CancelAwardRequest{Reason: "closed"})
		assert.ErrorIs(t, err, apperror.ErrConcurrentModification)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("missing award", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, false)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := f.service.Approve(ctx, companyID, actorID, uuid.New().String())
		assert.ErrorIs(t, err, incentiveerrors.ErrAwardNotFound)
	})
}

func TestIncentiveService_AdjustFinalReward(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("keeps calculated reward untouched", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, true)

		award := storedAward(companyID, incentive.StatusApproved)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return award, nil
		}
		f.repo.updateGuardedFn = func(ctx context.Context, a *incentive.IncentiveAward, status string, version int) (bool, error) {
			assert.Equal(t, incentive.StatusApproved, status)
			return true, nil
		}

		resp, err := f.service.AdjustFinalReward(ctx, companyID, actorID, award.ID.String(), incentive.AdjustFinalRewardRequest{
			FinalReward: decPtr("450.555"),
			Note:        "shared with night shift",
		})
		require.NoError(t, err)
		assert.Equal(t, "450.56", resp.FinalReward.StringFixed(2))
		assert.Equal(t, "600.00", resp.CalculatedReward.StringFixed(2))
		assert.Equal(t, bootstrap.AuditActionRewardAdjusted, f.audit.entries[0].Action)
	})

	t.Run("frozen once paid", func(t *testing.T) {
		f := setupService(t, nil)
		expectTx(t, f.sqlMock, false)

		award := storedAward(companyID, incentive.StatusPaid)
		f.repo.findByIDFn = func(ctx context.Context, cid, id string) (*incentive.IncentiveAward, error) {
			return award, nil
		}

		_, err := f.service.AdjustFinalReward(ctx, companyID, actorID, award.ID.String(), incentive.AdjustFinalRewardRequest{
			FinalReward: decPtr("1"),
		})
		assert.ErrorIs(t, err, incentiveerrors.ErrRewardFrozen)
	})

	t.Run("negative reward", func(t *testing.T) {
		f := setupService(t, nil)
		_, err := f.service.AdjustFinalReward(ctx, companyID, actorID, uuid.New().String(), incentive.AdjustFinalRewardRequest{
			FinalReward: decPtr("-5"),
		})
		assert.ErrorIs(t, err, incentiveerrors.ErrNegativeAmount)
	})
}

func TestIncentiveService_GetAll_Pagination(t *testing.T) {
	f := setupService(t, nil)
	companyID := uuid.New().String()

	f.repo.findAllFn = func(ctx context.Context, cid string, filter incentive.AwardFilter) ([]incentive.IncentiveAward, int64, error) {
		assert.Equal(t, 10, filter.Offset)
		assert.Equal(t, 5, filter.Limit)
		require.NotNil(t, filter.PeriodStart)
		assert.Equal(t, "2025-05-01", filter.PeriodStart.Format("2006-01-02"))
		return []incentive.IncentiveAward{*storedAward(companyID, incentive.StatusPending)}, 11, nil
	}

	resp, total, err := f.service.GetAll(context.Background(), companyID, incentive.GetAwardsFilterRequest{
		Period: "2025-05",
		Page:   3,
		Limit:  5,
	})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, int64(11), total)
}
