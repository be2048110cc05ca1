package incentivetier

import (
	"errors"

	incentivetiererrors "go-bakery/internal/incentivetier/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return incentivetiererrors.ErrTierNotFound
	}
	return err
}
