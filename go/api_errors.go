package shopserver

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	usersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/users/application"
	usersports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondBindError reports field violations as 422 and malformed payloads as 400.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondProblem(c, apierrors.NewValidationProblem(fieldMessages(verrs)))
		return
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func fieldMessages(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		if _, seen := fields[name]; !seen {
			fields[name] = fieldMessage(fe)
		}
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " element(s)"
		}
		return "must have at least " + fe.Param() + " characters"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email"
	default:
		return "failed on " + fe.Tag()
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+": "+value))
		return 0, false
	}
	return id, true
}

// problemFor translates an application error into its HTTP problem.
func problemFor(err error) apierrors.ProblemDetail {
	switch {
	case errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, ordersports.ErrNotFound),
		errors.Is(err, ordersports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error())
	case errors.Is(err, usersapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(err.Error())
	case errors.Is(err, usersports.ErrUserNotFound),
		errors.Is(err, ordersports.ErrClientNotFound):
		return apierrors.ErrUnauthorized.WithDetail(err.Error())
	case errors.Is(err, catalogapp.ErrDependentEntity):
		return apierrors.ErrDependentEntity.WithDetail(err.Error())
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error())
	case errors.Is(err, pagination.ErrInvalidSort):
		return apierrors.ErrBadRequest.WithDetail(err.Error())
	default:
		return apierrors.ErrInternal.WithDetail(http.StatusText(http.StatusInternalServerError))
	}
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	respondProblem(c, problemFor(err))
}
