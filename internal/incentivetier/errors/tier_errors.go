package incentivetiererrors

import (
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
	ErrInvalidTierID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid incentive tier id",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"min achievement percent must be >= 0 and below max achievement percent",
		http.StatusBadRequest,
	)
	ErrInvalidRewardType = apperror.New(
		apperror.CodeInvalidInput,
		"reward type must be one of fixed, percentage, both",
		http.StatusBadRequest,
	)
	ErrFixedAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"fixed amount is required for fixed and both reward types",
		http.StatusBadRequest,
	)
	ErrPercentageRateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"percentage rate is required for percentage and both reward types",
		http.StatusBadRequest,
	)
	ErrNegativeRewardValue = apperror.New(
		apperror.CodeInvalidInput,
		"reward values cannot be negative",
		http.StatusBadRequest,
	)
	ErrTierNotFound = apperror.New(
		apperror.CodeNotFound,
		"incentive tier not found",
		http.StatusNotFound,
	)
)
