package handlers

import (
	"errors"
	"net/http"

	"comic-news/helper"
	"comic-news/models"
	"comic-news/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	token, err := h.authService.Login(req)
	if err != nil {
		var configErr *models.ConfigurationError
		if errors.As(err, &configErr) {
			h.Helper.SendError(c, http.StatusInternalServerError, configErr.Error())
			return
		}
		h.Helper.SendError(c, http.StatusUnauthorized, err.Error())
		return
	}

	h.Helper.SendSuccess(c, gin.H{"token": token})
}
