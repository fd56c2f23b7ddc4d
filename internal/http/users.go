package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svaldez/catalog-admin/internal/auth"
	"github.com/svaldez/catalog-admin/internal/database/users"
)

// UsersController manages operator accounts. Account creation goes through
// the auth service so password policy and validation apply uniformly.
type UsersController struct {
	repo    *users.Repository
	service *auth.Service
}

func NewUsersController(repo *users.Repository, service *auth.Service) *UsersController {
	return &UsersController{repo: repo, service: service}
}

// GetAll lists all operator accounts. Password and token hashes never
// serialize (json:"-" on the entity).
// GET /api/users
func (uc *UsersController) GetAll(c *gin.Context) {
	list, err := uc.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all users")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds an operator account.
// POST /api/users
func (uc *UsersController) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username, email and password are required")
		return
	}

	user, err := uc.service.CreateUser(req.Username, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrUsernameInvalid),
			errors.Is(err, auth.ErrEmailInvalid),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "create user")
		}
		return
	}
	respondCreated(c, user)
}

// Delete removes an operator account. Self-deletion is rejected so the last
// admin cannot lock everyone out mid-session.
// DELETE /api/users/:id
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if id == GetUserID(c) {
		respondBadRequest(c, "cannot delete your own account")
		return
	}

	if err := uc.repo.Delete(id); err != nil {
		respondInternalError(c, err, "delete user")
		return
	}
	respondSuccess(c, "user deleted")
}

// GenerateToken issues a fresh API token for an operator. The plaintext is
// returned once and never stored.
// POST /api/users/:id/token
func (uc *UsersController) GenerateToken(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	token, err := uc.service.GenerateToken(id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
