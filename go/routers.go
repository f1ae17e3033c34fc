package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Middleware runs before HandlerFunc, in order.
	Middleware []gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	useJSONFieldNames()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Middleware...), route.HandlerFunc)
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}
	return router
}

// DefaultHandleFunc is the default handler for not yet implemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the auth part of the API
	AuthAPI AuthAPI
	// Routes for the category part of the API
	CategoryAPI CategoryAPI
	// Routes for the order part of the API
	OrderAPI OrderAPI
	// Routes for the product part of the API
	ProductAPI ProductAPI
	// Routes for the user part of the API
	UserAPI UserAPI
	// Security guards the protected routes. A nil Security rejects every protected call.
	Security *Security
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	guard := handleFunctions.Security
	if guard == nil {
		guard = NewSecurity(nil)
	}
	authenticated := []gin.HandlerFunc{guard.RequireAuthentication()}
	adminOnly := []gin.HandlerFunc{guard.RequireAnyRole(security.RoleAdmin)}
	anyRole := []gin.HandlerFunc{guard.RequireAnyRole(security.RoleAdmin, security.RoleClient)}

	return []Route{
		{
			"Token",
			http.MethodPost,
			"/oauth2/token",
			handleFunctions.AuthAPI.Token,
			nil,
		},
		{
			"FindAllCategories",
			http.MethodGet,
			"/categories",
			handleFunctions.CategoryAPI.FindAll,
			nil,
		},
		{
			"FindAllProducts",
			http.MethodGet,
			"/products",
			handleFunctions.ProductAPI.FindAll,
			nil,
		},
		{
			"FindProductById",
			http.MethodGet,
			"/products/:id",
			handleFunctions.ProductAPI.FindByID,
			nil,
		},
		{
			"InsertProduct",
			http.MethodPost,
			"/products",
			handleFunctions.ProductAPI.Insert,
			adminOnly,
		},
		{
			"UpdateProduct",
			http.MethodPut,
			"/products/:id",
			handleFunctions.ProductAPI.Update,
			adminOnly,
		},
		{
			"DeleteProduct",
			http.MethodDelete,
			"/products/:id",
			handleFunctions.ProductAPI.Delete,
			adminOnly,
		},
		{
			"FindOrderById",
			http.MethodGet,
			"/orders/:id",
			handleFunctions.OrderAPI.FindByID,
			authenticated,
		},
		{
			"InsertOrder",
			http.MethodPost,
			"/orders",
			handleFunctions.OrderAPI.Insert,
			anyRole,
		},
		{
			"GetMe",
			http.MethodGet,
			"/users/me",
			handleFunctions.UserAPI.GetMe,
			anyRole,
		},
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			Healthz,
			nil,
		},
	}
}

// Get /healthz
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
