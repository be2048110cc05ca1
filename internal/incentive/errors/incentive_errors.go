package incentiveerrors

import (
	"fmt"
	"net/http"

	"go-bakery/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidAwardID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid incentive award id",
		http.StatusBadRequest,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid branch id",
		http.StatusBadRequest,
	)
	ErrInvalidTierID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid incentive tier id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidPeriod,
		"period must use the YYYY-MM format",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodRange = apperror.New(
		apperror.CodeInvalidPeriod,
		"award period must span exactly one calendar month",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeNegativeAmount,
		"target, achieved and reward amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrEmptyCommit = apperror.New(
		apperror.CodeInvalidInput,
		"at least one award is required",
		http.StatusBadRequest,
	)
	ErrDuplicateBranchInBatch = apperror.New(
		apperror.CodeInvalidInput,
		"a branch may appear only once per commit",
		http.StatusBadRequest,
	)
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"branch not found",
		http.StatusNotFound,
	)
	ErrTierNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"incentive tier is not active for this company",
		http.StatusBadRequest,
	)
	ErrTierMismatch = apperror.New(
		apperror.CodeTierMismatch,
		"incentive tier does not match the branch achievement",
		http.StatusBadRequest,
	)
	ErrAwardNotFound = apperror.New(
		apperror.CodeNotFound,
		"incentive award not found",
		http.StatusNotFound,
	)
	ErrInvalidStateTransition = apperror.New(
		apperror.CodeInvalidStateTransition,
		"incentive award transition is not allowed",
		http.StatusConflict,
	)
	ErrRewardFrozen = apperror.New(
		apperror.CodeRewardFrozen,
		"final reward can only change while the award is pending or approved",
		http.StatusConflict,
	)
	ErrDuplicateAwardPeriod = apperror.New(
		apperror.CodeDuplicateAwardPeriod,
		"an incentive award already exists for this branch and period",
		http.StatusConflict,
	)
)

type TransitionDetail struct {
	AwardID       string `json:"award_id"`
	CurrentStatus string `json:"current_status"`
	Action        string `json:"action"`
}

func InvalidStateTransition(awardID, currentStatus, action string) *apperror.AppError {
	return ErrInvalidStateTransition.WithDetail(
		fmt.Sprintf("cannot %s incentive award %s while it is %s", action, awardID, currentStatus),
		TransitionDetail{AwardID: awardID, CurrentStatus: currentStatus, Action: action},
	)
}

type ConflictKey struct {
	BranchID        string `json:"branch_id"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	ExistingAwardID string `json:"existing_award_id,omitempty"`
}

// DuplicateAwardPeriod names the first conflicting key in the message and
// lists all of them in the details.
func DuplicateAwardPeriod(keys []ConflictKey) *apperror.AppError {
	if len(keys) == 0 {
		return ErrDuplicateAwardPeriod
	}

	msg := fmt.Sprintf("incentive award already exists for branch %s in period %s to %s",
		keys[0].BranchID, keys[0].PeriodStart, keys[0].PeriodEnd)
	if len(keys) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(keys)-1)
	}
	return ErrDuplicateAwardPeriod.WithDetail(msg, keys)
}
