package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/internal/application"
	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/interface/middleware"
	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/response"
)

const maxImageSize = 5 << 20

// PlantUseCase is the part of *application.PlantService the handler needs.
type PlantUseCase interface {
	List(ctx context.Context, userID string) ([]entity.Plant, error)
	Get(ctx context.Context, id, userID string) (*entity.Plant, error)
	Create(ctx context.Context, userID string, in application.CreatePlantInput) (*entity.Plant, error)
	Update(ctx context.Context, id, userID string, in application.UpdatePlantInput) (*entity.Plant, error)
	Delete(ctx context.Context, id, userID string) error
	Water(ctx context.Context, id, userID string) (*entity.Plant, error)
	UploadImage(ctx context.Context, id, userID string, r io.Reader, filename, contentType string) (*entity.Plant, error)
}

type PlantHandler struct {
	Svc    PlantUseCase
	Logger *logrus.Logger
}

func NewPlantHandler(svc PlantUseCase, logger *logrus.Logger) *PlantHandler {
	return &PlantHandler{Svc: svc, Logger: logger}
}

type createPlantRequest struct {
	Name              string     `json:"name" binding:"required,max=100"`
	Type              string     `json:"type" binding:"required,max=50"`
	CareInstructions  string     `json:"careInstructions"`
	WateringFrequency int        `json:"wateringFrequency" binding:"omitempty,wfreq"`
	LastWatered       *time.Time `json:"lastWatered"`
	NextWatering      *time.Time `json:"nextWatering"`
	ImageURL          string     `json:"imageUrl" binding:"omitempty,url"`
}

type updatePlantRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Type              *string    `json:"type" binding:"omitempty,min=1,max=50"`
	CareInstructions  *string    `json:"careInstructions"`
	WateringFrequency *int       `json:"wateringFrequency" binding:"omitempty,wfreq"`
	LastWatered       *time.Time `json:"lastWatered"`
	ImageURL          *string    `json:"imageUrl" binding:"omitempty,url"`
}

func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plants": plants}, "plants", map[string]any{"count": len(plants)})
}

func (h *PlantHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plant": p}, "plant", nil)
}

func (h *PlantHandler) Create(c *gin.Context) {
	var req createPlantRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreatePlantInput{
		Name:              req.Name,
		Type:              req.Type,
		CareInstructions:  req.CareInstructions,
		WateringFrequency: req.WateringFrequency,
		LastWatered:       req.LastWatered,
		NextWatering:      req.NextWatering,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"plant": p}, "Plant created", nil)
}

func (h *PlantHandler) Update(c *gin.Context) {
	var req updatePlantRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), application.UpdatePlantInput{
		Name:              req.Name,
		Type:              req.Type,
		CareInstructions:  req.CareInstructions,
		WateringFrequency: req.WateringFrequency,
		LastWatered:       req.LastWatered,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plant": p}, "Plant updated", nil)
}

func (h *PlantHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Plant deleted", nil)
}

func (h *PlantHandler) Water(c *gin.Context) {
	p, err := h.Svc.Water(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plant": p}, "Plant watered", nil)
}

// UploadImage accepts a multipart "image" field of at most 5 MiB.
func (h *PlantHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "image file is required", nil)
		return
	}
	if fh.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "image must be at most 5MB", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "cannot read image", nil)
		return
	}
	defer f.Close()

	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), f, fh.Filename, contentType)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plant": p}, "Plant image uploaded", nil)
}
