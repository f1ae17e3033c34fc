package shopserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	usersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/users/application"
)

func TestProblemFor_StatusBySentinel(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"unknown product":   {fmt.Errorf("%w: 1000", ordersports.ErrProductNotFound), http.StatusNotFound},
		"vanished client":   {fmt.Errorf("%w: client 999", ordersports.ErrClientNotFound), http.StatusUnauthorized},
		"foreign order":     {usersapp.ErrForbidden, http.StatusForbidden},
		"referenced delete": {catalogapp.ErrDependentEntity, http.StatusBadRequest},
		"unexpected":        {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.status, problemFor(tc.err).Status)
		})
	}
}
