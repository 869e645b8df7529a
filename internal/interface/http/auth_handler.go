package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/internal/application"
	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/interface/middleware"
	"github.com/oksasatya/plantify/pkg/response"
)

// AuthUseCase is the part of *application.AuthService the handler needs.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, name string) (*application.AuthResult, error)
	Login(ctx context.Context, email, password string) (*application.AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*application.AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	GetUserByID(ctx context.Context, userID string) (*entity.PublicUser, error)
}

type AuthHandler struct {
	Svc    AuthUseCase
	Logger *logrus.Logger
}

func NewAuthHandler(svc AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// logoutRequest allows an absent token; logout then only ends the client session.
type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Login successful", nil)
}

func (h *AuthHandler) Google(c *gin.Context) {
	var req googleRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Svc.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Google login successful", nil)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	access, err := h.Svc.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"accessToken": access}, "Token refreshed", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.RefreshToken); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetUserByID(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile", nil)
}
