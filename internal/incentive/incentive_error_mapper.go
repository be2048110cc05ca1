package incentive

import (
	"errors"
	"strings"

	incentiveerrors "go-bakery/internal/incentive/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const awardPeriodConstraint = "uq_incentive_award_branch_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return incentiveerrors.ErrAwardNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return incentiveerrors.ErrDuplicateAwardPeriod
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == awardPeriodConstraint {
			return incentiveerrors.ErrDuplicateAwardPeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, awardPeriodConstraint) {
		return incentiveerrors.ErrDuplicateAwardPeriod
	}
	// sqlite reports the violated columns instead of the index name
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "incentive_awards.branch_id") {
		return incentiveerrors.ErrDuplicateAwardPeriod
	}

	return err
}
