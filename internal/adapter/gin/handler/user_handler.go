package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-profile-service/internal/schema"
	"user-profile-service/internal/usecase/user"
	"user-profile-service/pkg/apperrors"
)

// internalErrorMessage replaces unclassified failure messages in
// production-like environments.
const internalErrorMessage = "an internal error occurred"

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	uc         user.Usecase
	schema     *schema.Validator
	log        *zap.Logger
	production bool
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(uc user.Usecase, log *zap.Logger, production bool) *UserHandler {
	return &UserHandler{
		uc:         uc,
		schema:     schema.New(),
		log:        log,
		production: production,
	}
}

// UserResponse represents the HTTP response for user data.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PaginationResponse represents pagination information.
type PaginationResponse struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ListUsersResponse represents the HTTP response for listing users.
type ListUsersResponse struct {
	Data       []UserResponse     `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// DeleteUserResponse represents the HTTP response after deleting a user.
type DeleteUserResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the uniform envelope for every non-2xx response.
type ErrorResponse struct {
	Success bool                  `json:"success"`
	Error   string                `json:"error"`
	Code    string                `json:"code,omitempty"`
	Details []apperrors.Violation `json:"details,omitempty"`
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req schema.CreateUser
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidationError(
			apperrors.Violation{Field: "body", Message: "must be a valid JSON object"},
		))
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(resp))
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	resp, err := h.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req schema.UpdateUser
	if err := c.ShouldBindJSON(&req); err != nil {
		// An absent body reads as an empty update; the operation layer
		// rejects it as NO_UPDATES, same as an explicit {}
		if !errors.Is(err, io.EOF) {
			h.respondError(c, apperrors.NewValidationError(
				apperrors.Violation{Field: "body", Message: "must be a valid JSON object"},
			))
			return
		}
		req = schema.UpdateUser{}
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	resp, err := h.uc.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteUserResponse{
		Message: "user deleted",
		ID:      resp.ID,
	})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	pagination, violations := h.schema.Pagination(c.Query("page"), c.Query("limit"))
	if len(violations) > 0 {
		h.respondError(c, apperrors.NewValidationError(violations...))
		return
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Pagination: pagination,
		Search:     c.Query("search"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		data[i] = toResponse(&resp.Users[i])
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Data: data,
		Pagination: PaginationResponse{
			Page:       resp.Pagination.Page,
			Limit:      resp.Pagination.Limit,
			Total:      resp.Pagination.Total,
			TotalPages: resp.Pagination.TotalPages,
		},
	})
}

// respondError is the single boundary for every error leaving the pipeline.
// Recognized taxonomy members keep their status, code and message verbatim;
// anything else becomes a generic 500 whose message is suppressed in
// production-like environments. The error is always logged with method and
// path before responding.
func (h *UserHandler) respondError(c *gin.Context, err error) {
	h.log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	var hs apperrors.HTTPStatuser
	if errors.As(err, &hs) {
		resp := ErrorResponse{
			Success: false,
			Error:   err.Error(),
			Code:    hs.Code(),
		}
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			resp.Details = ve.Violations
		}
		if hs.HTTPStatus() == http.StatusInternalServerError && h.production {
			resp.Error = internalErrorMessage
		}
		c.JSON(hs.HTTPStatus(), resp)
		return
	}

	msg := err.Error()
	if h.production {
		msg = internalErrorMessage
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   msg,
		Code:    apperrors.CodeInternal,
	})
}
