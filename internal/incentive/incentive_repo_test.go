package incentive_test

import (
	"context"
	"testing"
	"time"

	"go-bakery/internal/incentive"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAwardDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&incentive.IncentiveAward{},
		&incentive.Branch{},
		&incentive.SalesTarget{},
		&incentive.SalesTransaction{},
	))
	return db
}

func newAward(companyID, branchID uuid.UUID, number string) incentive.IncentiveAward {
	return incentive.IncentiveAward{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		AwardNumber:        number,
		BranchID:           branchID,
		PeriodStart:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:          time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		TargetAmount:       dec("10000"),
		AchievedAmount:     dec("12000"),
		AchievementPercent: dec("120"),
		CalculatedReward:   dec("600"),
		FinalReward:        dec("600"),
		Status:             incentive.StatusPending,
		Version:            1,
		CreatedBy:          uuid.New(),
	}
}

func TestAwardRepository_SecondCommitForSamePeriodIsRejected(t *testing.T) {
	db := setupAwardDB(t)
	repo := incentive.NewRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	branchID := uuid.New()

	require.NoError(t, repo.CreateBatch(ctx, []incentive.IncentiveAward{newAward(companyID, branchID, "INC-202505-0001")}))

	err := repo.CreateBatch(ctx, []incentive.IncentiveAward{newAward(companyID, branchID, "INC-202505-0002")})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&incentive.IncentiveAward{}).Where("branch_id = ?", branchID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	existing, err := repo.FindByKeys(ctx, companyID.String(),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		[]uuid.UUID{branchID, uuid.New()},
	)
	require.NoError(t, err)
	require.Len(t, existing, 1)
	assert.Equal(t, "INC-202505-0001", existing[0].AwardNumber)
}

func TestAwardRepository_UpdateGuarded(t *testing.T) {
	db := setupAwardDB(t)
	repo := incentive.NewRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	award := newAward(companyID, uuid.New(), "INC-202505-0001")
	require.NoError(t, repo.CreateBatch(ctx, []incentive.IncentiveAward{award}))

	approved := award
	approved.Status = incentive.StatusApproved
	approved.Version = 2
	actor := uuid.New()
	approved.ApprovedBy = &actor

	ok, err := repo.UpdateGuarded(ctx, &approved, incentive.StatusPending, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second writer still holding version 1 loses
	stale := award
	stale.Status = incentive.StatusCancelled
	stale.Version = 2
	ok, err = repo.UpdateGuarded(ctx, &stale, incentive.StatusPending, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByIDAndCompany(ctx, companyID.String(), award.ID.String())
	require.NoError(t, err)
	assert.Equal(t, incentive.StatusApproved, got.Status)
	assert.Equal(t, 2, got.Version)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, actor, *got.ApprovedBy)

	_, err = repo.FindByIDAndCompany(ctx, uuid.New().String(), award.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAwardRepository_FindAllFiltersAndCounts(t *testing.T) {
	db := setupAwardDB(t)
	repo := incentive.NewRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	first := newAward(companyID, uuid.New(), "INC-202505-0001")
	second := newAward(companyID, uuid.New(), "INC-202505-0002")
	second.Status = incentive.StatusApproved
	foreign := newAward(uuid.New(), uuid.New(), "INC-202505-0001")
	require.NoError(t, repo.CreateBatch(ctx, []incentive.IncentiveAward{first, second, foreign}))

	awards, total, err := repo.FindAll(ctx, companyID.String(), incentive.AwardFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, awards, 1)
	assert.Equal(t, "INC-202505-0001", awards[0].AwardNumber)

	approved, total, err := repo.FindAll(ctx, companyID.String(), incentive.AwardFilter{Status: incentive.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.ID, approved[0].ID)
}

func TestAwardRepository_SalesFigures(t *testing.T) {
	db := setupAwardDB(t)
	repo := incentive.NewRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	branch := incentive.Branch{ID: uuid.New(), CompanyID: companyID, Name: "North", BranchClass: "outlet", IsActive: true}
	closed := incentive.Branch{ID: uuid.New(), CompanyID: companyID, Name: "Old Town", IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	require.NoError(t, db.Create(&closed).Error)
	require.NoError(t, db.Model(&incentive.Branch{}).Where("id = ?", closed.ID).Update("is_active", false).Error)

	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&incentive.SalesTarget{
		ID: uuid.New(), CompanyID: companyID, BranchID: branch.ID, PeriodStart: may, TargetAmount: dec("10000"),
	}).Error)

	sales := []incentive.SalesTransaction{
		{ID: uuid.New(), CompanyID: companyID, BranchID: branch.ID, SoldAt: may.Add(2 * time.Hour), TotalAmount: dec("7000"), Status: incentive.SalesStatusCompleted},
		{ID: uuid.New(), CompanyID: companyID, BranchID: branch.ID, SoldAt: may.AddDate(0, 0, 30), TotalAmount: dec("5000"), Status: incentive.SalesStatusCompleted},
		{ID: uuid.New(), CompanyID: companyID, BranchID: branch.ID, SoldAt: may.AddDate(0, 0, 10), TotalAmount: dec("900"), Status: "void"},
		{ID: uuid.New(), CompanyID: companyID, BranchID: branch.ID, SoldAt: may.AddDate(0, 1, 0), TotalAmount: dec("800"), Status: incentive.SalesStatusCompleted},
	}
	require.NoError(t, db.Create(&sales).Error)

	target, err := repo.TargetFor(ctx, companyID.String(), branch.ID.String(), may)
	require.NoError(t, err)
	assert.True(t, dec("10000").Equal(target), "target %s", target)

	achieved, err := repo.AchievedFor(ctx, companyID.String(), branch.ID.String(), may, may.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, dec("12000").Equal(achieved), "achieved %s", achieved)

	missing, err := repo.TargetFor(ctx, companyID.String(), uuid.New().String(), may)
	require.NoError(t, err)
	assert.True(t, missing.IsZero())

	active, err := repo.ActiveBranches(ctx, companyID.String())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "North", active[0].Name)
}
