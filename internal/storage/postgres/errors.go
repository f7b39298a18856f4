package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"judicial_capture/internal/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

// mapInsertError turns a unique-constraint violation into domain.ErrDuplicate.
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
