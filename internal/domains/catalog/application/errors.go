package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrUnknownCategory signals a category id that does not exist.
	ErrUnknownCategory = errors.New("category not found")
	// ErrDependentEntity signals a delete refused because other records reference the product.
	ErrDependentEntity = errors.New("integrity violation: product is referenced by other records")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidDescription) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNoCategories) ||
		errors.Is(err, ErrUnknownCategory) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrIntegrityViolation) {
		return fmt.Errorf("%w: %w", ErrDependentEntity, err)
	}
	return err
}
