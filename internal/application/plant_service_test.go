package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/plantify/pkg/apperror"
)

type fakeImages struct {
	path, contentType, body string
}

func (f *fakeImages) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, string(b)
	return "https://storage.test/" + objectPath, nil
}

func newPlantService() (*PlantService, *fakeImages) {
	img := &fakeImages{}
	svc := NewPlantService(newMemPlants(), img, nil)
	svc.Now = func() time.Time { return time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC) }
	return svc, img
}

func TestCreatePlantDefaults(t *testing.T) {
	svc, _ := newPlantService()
	p, err := svc.Create(context.Background(), "u1", CreatePlantInput{Name: " Monstera ", Type: "Tropical"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Monstera" || p.WateringFrequency != 7 {
		t.Fatalf("unexpected plant %+v", p)
	}
	if p.NextWatering != nil {
		t.Fatal("expected no schedule without a last watering")
	}
}

func TestCreatePlantSchedulesFromLastWatered(t *testing.T) {
	svc, _ := newPlantService()
	last := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "u1", CreatePlantInput{Name: "Fern", Type: "Fern", WateringFrequency: 5, LastWatered: &last})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if p.NextWatering == nil || !p.NextWatering.Equal(want) {
		t.Fatalf("expected next watering %v, got %v", want, p.NextWatering)
	}
}

func TestCreatePlantValidation(t *testing.T) {
	svc, _ := newPlantService()
	tests := []struct {
		name string
		in   CreatePlantInput
	}{
		{"no name", CreatePlantInput{Type: "Cactus"}},
		{"no type", CreatePlantInput{Name: "Spike"}},
		{"negative frequency", CreatePlantInput{Name: "Spike", Type: "Cactus", WateringFrequency: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", tt.in)
			if apperror.CodeOf(err) != apperror.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPlantOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlantService()
	p, _ := svc.Create(ctx, "owner", CreatePlantInput{Name: "Basil", Type: "Herb"})

	name := "Stolen"
	checks := map[string]error{}
	_, checks["get"] = svc.Get(ctx, p.ID, "intruder")
	_, checks["update"] = svc.Update(ctx, p.ID, "intruder", UpdatePlantInput{Name: &name})
	_, checks["water"] = svc.Water(ctx, p.ID, "intruder")
	checks["delete"] = svc.Delete(ctx, p.ID, "intruder")
	for op, err := range checks {
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("%s: expected not found, got %v", op, err)
		}
	}

	list, err := svc.List(ctx, "intruder")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list for other user, got %v %v", list, err)
	}
	if got, _ := svc.Get(ctx, p.ID, "owner"); got == nil || got.Name != "Basil" {
		t.Fatalf("expected plant untouched, got %+v", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlantService()
	_, _ = svc.Create(ctx, "u1", CreatePlantInput{Name: "First", Type: "A"})
	_, _ = svc.Create(ctx, "u1", CreatePlantInput{Name: "Second", Type: "B"})
	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Second" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}

func TestUpdatePlantPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlantService()
	last := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p, _ := svc.Create(ctx, "u1", CreatePlantInput{Name: "Aloe", Type: "Succulent", CareInstructions: "Bright light", LastWatered: &last})

	freq := 14
	got, err := svc.Update(ctx, p.ID, "u1", UpdatePlantInput{WateringFrequency: &freq})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Aloe" || got.CareInstructions != "Bright light" {
		t.Fatalf("expected untouched fields, got %+v", got)
	}
	want := last.AddDate(0, 0, 14)
	if got.NextWatering == nil || !got.NextWatering.Equal(want) {
		t.Fatalf("expected next watering %v, got %v", want, got.NextWatering)
	}

	zero := 0
	if _, err := svc.Update(ctx, p.ID, "u1", UpdatePlantInput{WateringFrequency: &zero}); apperror.CodeOf(err) != apperror.CodeValidation {
		t.Fatalf("expected validation error for zero frequency, got %v", err)
	}
}

func TestWaterPlant(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlantService()
	p, _ := svc.Create(ctx, "u1", CreatePlantInput{Name: "Pothos", Type: "Vine", WateringFrequency: 3})

	got, err := svc.Water(ctx, p.ID, "u1")
	if err != nil {
		t.Fatalf("water: %v", err)
	}
	now := svc.Now()
	if got.LastWatered == nil || !got.LastWatered.Equal(now) {
		t.Fatalf("expected last watered %v, got %v", now, got.LastWatered)
	}
	if got.NextWatering == nil || !got.NextWatering.Equal(now.AddDate(0, 0, 3)) {
		t.Fatalf("unexpected next watering %v", got.NextWatering)
	}
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	svc, img := newPlantService()
	p, _ := svc.Create(ctx, "u1", CreatePlantInput{Name: "Rose", Type: "Flower"})

	got, err := svc.UploadImage(ctx, p.ID, "u1", strings.NewReader("png-bytes"), "Rose.PNG", "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(img.path, "plants/u1/"+p.ID+"/") || !strings.HasSuffix(img.path, ".png") {
		t.Fatalf("unexpected object path %q", img.path)
	}
	if img.body != "png-bytes" || img.contentType != "image/png" {
		t.Fatalf("unexpected upload %+v", img)
	}
	if got.ImageURL != "https://storage.test/"+img.path {
		t.Fatalf("unexpected image url %q", got.ImageURL)
	}

	svc.Images = nil
	if _, err := svc.UploadImage(ctx, p.ID, "u1", strings.NewReader("x"), "a.png", "image/png"); apperror.CodeOf(err) != apperror.CodeInternal {
		t.Fatalf("expected internal error without storage, got %v", err)
	}
}
