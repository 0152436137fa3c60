package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/request"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/response"
)

// AuthHandler handles operator login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the operator PIN for an access token
// @Summary Login
// @Description Authenticate the operator and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Operator PIN"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(&service.LoginInput{
		Operator: req.Operator,
		PIN:      req.PIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", output)
}
