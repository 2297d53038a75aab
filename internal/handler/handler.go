package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
)

// ContextClaims is the gin context key the auth middleware stores the
// decoded token claims under.
const ContextClaims = "claims"

// Claims returns the authenticated identity set by the auth middleware.
func Claims(c *gin.Context) (*model.TokenClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*model.TokenClaims)
	return claims, ok
}

// BindJSON binds and validates the request body, translating field-level
// validation failures into the API's validation error shape.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return apperrors.Validation("invalid fields: "+strings.Join(fields, ", "), err)
		}
		return apperrors.Validation("invalid request body", err)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}

// ParseIDParam parses the :id path parameter as a UUID.
func ParseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid id", err)
	}
	return id, nil
}
