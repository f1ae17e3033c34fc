package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
)

// UserAPI exposes the authenticated user's profile.
type UserAPI struct {
	service usersports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

// Get /users/me
// Get the logged in user
func (api *UserAPI) GetMe(c *gin.Context) {
	me, err := api.service.GetMe(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(me))
}
