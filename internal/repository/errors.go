package repository

import (
	"errors"

	"github.com/toiture-lv/quote-api/internal/domain"
	"gorm.io/gorm"
)

// wrap maps gorm errors onto domain error kinds
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundf("%s", op)
	}
	return domain.Upstream(op, err)
}
