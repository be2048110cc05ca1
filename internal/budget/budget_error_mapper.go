package budget

import (
	"errors"

	budgeterrors "go-bakery/internal/budget/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return budgeterrors.ErrProjectNotFound
	}
	return err
}
