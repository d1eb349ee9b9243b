package service

import (
	"errors"

	"github.com/toiture-lv/quote-api/internal/domain"
)

func isUpstream(err error) bool {
	return errors.Is(err, domain.ErrUpstream)
}
