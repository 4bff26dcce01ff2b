package usecase

import (
	"testing"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
)

func TestValidateScore(t *testing.T) {
	for score := uint8(1); score <= 5; score++ {
		if err := ValidateScore(score); err != nil {
			t.Fatalf("score %d must be valid, got %v", score, err)
		}
	}
	for _, score := range []uint8{0, 6, 100, 255} {
		if err := ValidateScore(score); err != domainErrors.ErrInvalidRating {
			t.Fatalf("expected ErrInvalidRating for %d, got %v", score, err)
		}
	}
}
