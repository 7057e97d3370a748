package handlers

import (
	"net/http"

	"buscalocal/services/persistence"
	"buscalocal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the lightweight profile endpoints.
type UserHandler struct {
	Gateway *persistence.Gateway
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(gateway *persistence.Gateway) *UserHandler {
	return &UserHandler{Gateway: gateway}
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		DisplayName string `json:"displayName" binding:"required"`
		Gender      string `json:"gender" binding:"required"`
		Phone       string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Gateway.CreateUser(req.DisplayName, req.Gender, req.Phone)
	if err != nil {
		logger.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el usuario"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUserByIDHandler handles GET /api/users/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	user, err := h.Gateway.GetUser(id)
	if err != nil {
		logger.Error("User not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUserHandler handles DELETE /api/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.Gateway.DeleteUser(id); err != nil {
		logger.Error("Delete error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el usuario"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}
