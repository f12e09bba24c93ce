package application

import (
	"errors"
	"fmt"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	// Callers branch on it to map the failure to a bad-request response.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrItemFileMismatch means the batch supplied a different number of
	// configurations and design files. Never truncated or padded.
	ErrItemFileMismatch = errors.New("configuration and file counts must match")
	// ErrNonPositiveTotal rejects a batch whose summed price is not
	// greater than zero.
	ErrNonPositiveTotal = errors.New("order total must be greater than zero")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidWidth) ||
		errors.Is(err, domain.ErrInvalidHeight) ||
		errors.Is(err, domain.ErrUnknownMaterial) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrEmptyContactNumber) ||
		errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrTotalMismatch) ||
		errors.Is(err, domain.ErrNonPositivePrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func mapItemError(index int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("item %d: %w", index, mapError(err))
}
