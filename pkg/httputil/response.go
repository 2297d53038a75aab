package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawlink/lawlink-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	HasMore  bool `json:"has_more"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response, mapping the application error
// taxonomy onto HTTP statuses. Internal causes are attached to the gin
// error list for the error middleware to log, never echoed to the client.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)

	if appErr.Code == errors.CodeInternal {
		_ = c.Error(err)
	}

	c.JSON(appErr.StatusCode(), Response{
		Success: false,
		Error: &Error{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

// RespondWithPagination sends a paginated response
func RespondWithPagination(c *gin.Context, data interface{}, page, pageSize, total int) {
	offset := (page - 1) * pageSize
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PaginatedResponse{
			Data: data,
			Pagination: Pagination{
				Page:     page,
				PageSize: pageSize,
				Total:    total,
				HasMore:  offset+pageSize < total,
			},
		},
	})
}
