package usecase

import domainErrors "github.com/peerbay/marketplace/internal/domain/errors"

// ValidateScore checks that a rating falls inside the 1-5 range.
func ValidateScore(score uint8) error {
	if score < 1 || score > 5 {
		return domainErrors.ErrInvalidRating
	}
	return nil
}
