package entity

import "time"

var (
	PlantCategories   = []string{"Indoor", "Outdoor", "Low Maintenance", "Pet Safe", "Flowering"}
	ProblemCategories = []string{"Pests", "Diseases", "Environmental", "Nutrition", "Watering"}
)

// CatalogPlant is an entry of the public explore catalog.
type CatalogPlant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ScientificName string    `json:"scientificName"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	Light          string    `json:"light"`
	Water          string    `json:"water"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags"`
	Icon           string    `json:"icon,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Problem is a common plant-care issue with causes and remedies.
type Problem struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	Severity            string    `json:"severity"`
	TreatmentDifficulty string    `json:"treatmentDifficulty"`
	CommonCauses        []string  `json:"commonCauses"`
	Solutions           []string  `json:"solutions"`
	Prevention          string    `json:"prevention"`
	AffectedPlants      []string  `json:"affectedPlants"`
	Icon                string    `json:"icon,omitempty"`
	Color               string    `json:"color,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
