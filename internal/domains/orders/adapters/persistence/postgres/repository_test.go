package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

func TestForeignKeyError_UsesConstraintName(t *testing.T) {
	clientErr := &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: clientConstraint, Detail: "Key (client_id)=(999) is not present"}
	err := foreignKeyError(clientErr, ports.ErrProductNotFound)
	require.ErrorIs(t, err, ports.ErrClientNotFound)
	require.NotErrorIs(t, err, ports.ErrProductNotFound)

	productErr := &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: productConstraint}
	require.ErrorIs(t, foreignKeyError(productErr, ports.ErrClientNotFound), ports.ErrProductNotFound)

	other := &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "fk_payments_order"}
	require.Same(t, other, foreignKeyError(other, ports.ErrProductNotFound))
}

func TestForeignKeyError_TranslatedErrorUsesFallback(t *testing.T) {
	require.ErrorIs(t, foreignKeyError(gorm.ErrForeignKeyViolated, ports.ErrClientNotFound), ports.ErrClientNotFound)
	require.ErrorIs(t, foreignKeyError(gorm.ErrForeignKeyViolated, ports.ErrProductNotFound), ports.ErrProductNotFound)

	boom := errors.New("connection reset")
	require.Same(t, boom, foreignKeyError(boom, ports.ErrProductNotFound))
}
