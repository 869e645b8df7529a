package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/internal/domain/entity"
	repo "github.com/oksasatya/plantify/internal/domain/repository"
	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/helpers"
)

var ErrPlantNotFound = apperror.New(apperror.CodeNotFound, "Plant not found")

// ImageStore persists uploaded files and returns their public URL.
// *helpers.GCSBucket implements it.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type PlantService struct {
	Repo repo.PlantRepository
	// Images is optional; without it uploads fail with INTERNAL_ERROR.
	Images ImageStore
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewPlantService(r repo.PlantRepository, images ImageStore, logger *logrus.Logger) *PlantService {
	return &PlantService{Repo: r, Images: images, Logger: logger, Now: time.Now}
}

type CreatePlantInput struct {
	Name              string
	Type              string
	CareInstructions  string
	WateringFrequency int // 0 means default
	LastWatered       *time.Time
	NextWatering      *time.Time
	ImageURL          string
}

// UpdatePlantInput carries a partial update; nil fields are left unchanged.
type UpdatePlantInput struct {
	Name              *string
	Type              *string
	CareInstructions  *string
	WateringFrequency *int
	LastWatered       *time.Time
	ImageURL          *string
}

func (s *PlantService) List(ctx context.Context, userID string) ([]entity.Plant, error) {
	plants, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.fail("list plants", err, userID)
	}
	return plants, nil
}

func (s *PlantService) Get(ctx context.Context, id, userID string) (*entity.Plant, error) {
	p, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.fail("get plant", err, userID)
	}
	return p, nil
}

func (s *PlantService) Create(ctx context.Context, userID string, in CreatePlantInput) (*entity.Plant, error) {
	p := &entity.Plant{
		UserID:            userID,
		Name:              strings.TrimSpace(in.Name),
		Type:              strings.TrimSpace(in.Type),
		CareInstructions:  strings.TrimSpace(in.CareInstructions),
		WateringFrequency: in.WateringFrequency,
		LastWatered:       in.LastWatered,
		NextWatering:      in.NextWatering,
		ImageURL:          strings.TrimSpace(in.ImageURL),
	}
	if p.WateringFrequency == 0 {
		p.WateringFrequency = entity.DefaultWateringFrequency
	}
	if err := validatePlant(p); err != nil {
		return nil, err
	}
	p.ScheduleNextWatering()
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, s.fail("create plant", err, userID)
	}
	return p, nil
}

func (s *PlantService) Update(ctx context.Context, id, userID string, in UpdatePlantInput) (*entity.Plant, error) {
	p, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.fail("get plant", err, userID)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		p.Type = strings.TrimSpace(*in.Type)
	}
	if in.CareInstructions != nil {
		p.CareInstructions = strings.TrimSpace(*in.CareInstructions)
	}
	if in.WateringFrequency != nil {
		p.WateringFrequency = *in.WateringFrequency
	}
	if in.LastWatered != nil {
		p.LastWatered = in.LastWatered
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if err := validatePlant(p); err != nil {
		return nil, err
	}
	p.ScheduleNextWatering()
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, s.fail("update plant", err, userID)
	}
	return p, nil
}

func (s *PlantService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		return s.fail("delete plant", err, userID)
	}
	return nil
}

// Water records a watering now and moves NextWatering forward.
func (s *PlantService) Water(ctx context.Context, id, userID string) (*entity.Plant, error) {
	p, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.fail("get plant", err, userID)
	}
	now := s.Now().UTC()
	p.LastWatered = &now
	p.ScheduleNextWatering()
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, s.fail("water plant", err, userID)
	}
	return p, nil
}

// UploadImage stores r as the plant's picture and saves its URL.
func (s *PlantService) UploadImage(ctx context.Context, id, userID string, r io.Reader, filename, contentType string) (*entity.Plant, error) {
	if s.Images == nil {
		return nil, apperror.New(apperror.CodeInternal, "Image storage is not configured")
	}
	p, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.fail("get plant", err, userID)
	}
	url, err := s.Images.Upload(ctx, helpers.PlantImagePath(userID, p.ID, filename), contentType, r)
	if err != nil {
		return nil, s.fail("upload plant image", err, userID)
	}
	p.ImageURL = url
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, s.fail("save plant image", err, userID)
	}
	return p, nil
}

func validatePlant(p *entity.Plant) error {
	switch {
	case p.Name == "":
		return apperror.New(apperror.CodeValidation, "Plant name is required")
	case p.Type == "":
		return apperror.New(apperror.CodeValidation, "Plant type is required")
	case p.WateringFrequency < 1:
		return apperror.New(apperror.CodeValidation, "Watering frequency must be at least 1 day")
	}
	return nil
}

func (s *PlantService) fail(op string, err error, userID string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPlantNotFound
	}
	helpers.LogError(s.Logger, "plant service failure", err, logrus.Fields{"op": op, "user_id": userID})
	return apperror.Wrap(apperror.CodeInternal, apperror.ErrInternal.Message, err)
}
