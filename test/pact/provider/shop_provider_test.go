//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-commerce-api/test/pact"

	shopserver "github.com/Apurer/go-gin-commerce-api/go"
	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	catalogobs "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	usersobs "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/observability"
	usersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/users/application"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestCommerceProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := newContractProviderServer(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	noop := func(bool, models.ProviderState) (models.ProviderStateResponse, error) { return nil, nil }
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateCatalogSeeded:  noop,
			pacttest.StateProductMissing: noop,
		},
	})
	require.NoError(t, err)
}

func newContractProviderServer(t testing.TB) *httptest.Server {
	t.Helper()

	repos := api.NewRepositories(nil)
	require.NoError(t, repos.Prepare(context.Background(), true, slog.New(slog.NewTextHandler(io.Discard, nil))))

	tokens, err := security.NewTokenManager("pact-provider-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)
	userService := usersobs.New(usersapp.NewService(repos.Users, tokens))

	handlers := shopserver.ApiHandleFunctions{
		CategoryAPI: shopserver.NewCategoryAPI(catalogapp.NewCategoryService(repos.Categories)),
		ProductAPI:  shopserver.NewProductAPI(catalogobs.New(catalogapp.NewProductService(repos.Products, repos.Categories))),
		UserAPI:     shopserver.NewUserAPI(userService),
		Security:    shopserver.NewSecurity(tokens),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = shopserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}
