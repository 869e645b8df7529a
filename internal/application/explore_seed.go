package application

import "github.com/oksasatya/plantify/internal/domain/entity"

// defaultCatalogPlants is the starter catalog: two plants per category.
func defaultCatalogPlants() []entity.CatalogPlant {
	return []entity.CatalogPlant{
		{
			Name: "Monstera", ScientificName: "Monstera deliciosa", Category: "Indoor",
			Difficulty: "Moderate", Light: "Bright Indirect", Water: "Medium",
			Tags:        []string{"Statement Plant", "Climbing", "Popular"},
			Description: "Iconic split-leaf plant. Prefers bright, indirect light.",
			Icon:        "eco_rounded",
		},
		{
			Name: "Fiddle Leaf Fig", ScientificName: "Ficus lyrata", Category: "Indoor",
			Difficulty: "Moderate", Light: "Bright Indirect", Water: "Medium",
			Tags:        []string{"Statement Plant", "Trendy", "Large Leaves"},
			Description: "Popular statement plant. Requires consistent care.",
			Icon:        "forest_rounded",
		},
		{
			Name: "Lavender", ScientificName: "Lavandula", Category: "Outdoor",
			Difficulty: "Easy", Light: "Full Sun", Water: "Low",
			Tags:        []string{"Fragrant", "Medicinal", "Drought Tolerant"},
			Description: "Beautiful purple flowers with calming fragrance. Perfect for gardens.",
			Icon:        "local_florist_rounded",
		},
		{
			Name: "Tomato Plant", ScientificName: "Solanum lycopersicum", Category: "Outdoor",
			Difficulty: "Moderate", Light: "Full Sun", Water: "Medium",
			Tags:        []string{"Edible", "Fruiting", "Garden"},
			Description: "Popular vegetable plant. Requires consistent watering and full sun.",
			Icon:        "park_rounded",
		},
		{
			Name: "Snake Plant", ScientificName: "Sansevieria trifasciata", Category: "Low Maintenance",
			Difficulty: "Easy", Light: "Low to Bright", Water: "Low",
			Tags:        []string{"Pet Safe", "Air Purifying", "Drought Tolerant"},
			Description: "Extremely low maintenance, perfect for beginners. Thrives on neglect.",
			Icon:        "grass_rounded",
		},
		{
			Name: "ZZ Plant", ScientificName: "Zamioculcas zamiifolia", Category: "Low Maintenance",
			Difficulty: "Easy", Light: "Low to Bright", Water: "Very Low",
			Tags:        []string{"Drought Tolerant", "Pet Safe", "Indestructible"},
			Description: "Nearly indestructible. Perfect for forgetful plant parents.",
			Icon:        "local_florist_rounded",
		},
		{
			Name: "Spider Plant", ScientificName: "Chlorophytum comosum", Category: "Pet Safe",
			Difficulty: "Easy", Light: "Bright Indirect", Water: "Medium",
			Tags:        []string{"Air Purifying", "Propagates Easily", "Non-Toxic"},
			Description: "Produces baby plants. Great for beginners and pets. Completely safe.",
			Icon:        "water_drop_rounded",
		},
		{
			Name: "Boston Fern", ScientificName: "Nephrolepis exaltata", Category: "Pet Safe",
			Difficulty: "Easy", Light: "Bright Indirect", Water: "Medium",
			Tags:        []string{"Air Purifying", "Humidity Loving", "Non-Toxic"},
			Description: "Lush green fronds. Safe for pets and great for air quality.",
			Icon:        "nature_rounded",
		},
		{
			Name: "Peace Lily", ScientificName: "Spathiphyllum", Category: "Flowering",
			Difficulty: "Easy", Light: "Low to Medium", Water: "Medium",
			Tags:        []string{"Air Purifying", "Low Light", "White Blooms"},
			Description: "Elegant white blooms. Tolerates low light conditions.",
			Icon:        "local_florist_rounded",
		},
		{
			Name: "African Violet", ScientificName: "Saintpaulia", Category: "Flowering",
			Difficulty: "Moderate", Light: "Bright Indirect", Water: "Medium",
			Tags:        []string{"Colorful", "Compact", "Indoor Blooms"},
			Description: "Beautiful purple, pink, or white flowers. Blooms year-round indoors.",
			Icon:        "diamond_rounded",
		},
	}
}

func defaultProblems() []entity.Problem {
	return []entity.Problem{
		{
			Name: "Aphids", Category: "Pests", Severity: "Moderate", TreatmentDifficulty: "Easy",
			Description:  "Small green or black insects clustering on new growth",
			Icon:         "bug_report_rounded",
			Color:        "#EF4444",
			CommonCauses: []string{"Weak plants", "Over-fertilization", "Dry conditions"},
			Solutions: []string{
				"Spray with water to dislodge",
				"Use insecticidal soap",
				"Introduce beneficial insects like ladybugs",
				"Apply neem oil treatment",
			},
			Prevention:     "Keep plants healthy and well-watered. Regularly inspect new growth.",
			AffectedPlants: []string{"Most plants", "Especially roses", "Vegetables"},
		},
		{
			Name: "Spider Mites", Category: "Pests", Severity: "Severe", TreatmentDifficulty: "Moderate",
			Description:  "Tiny red or brown mites causing webbing and yellowing",
			Icon:         "bug_report_rounded",
			Color:        "#DC2626",
			CommonCauses: []string{"Dry air", "Overcrowding", "Poor ventilation"},
			Solutions: []string{
				"Increase humidity around plants",
				"Wipe leaves with damp cloth",
				"Use miticide or insecticidal soap",
				"Isolate affected plants immediately",
			},
			Prevention:     "Maintain 40-50% humidity. Space plants properly for air circulation.",
			AffectedPlants: []string{"Houseplants", "Indoor plants", "Dry environment lovers"},
		},
		{
			Name: "Yellowing Leaves", Category: "Environmental", Severity: "Mild", TreatmentDifficulty: "Easy",
			Description:  "Leaves turning yellow, often starting from bottom",
			Icon:         "warning_rounded",
			Color:        "#F59E0B",
			CommonCauses: []string{"Overwatering", "Underwatering", "Nutrient deficiency", "Natural aging"},
			Solutions: []string{
				"Check soil moisture - adjust watering schedule",
				"Test for nutrient deficiencies",
				"Ensure proper drainage",
				"Trim yellow leaves if necessary",
			},
			Prevention:     "Water only when top inch of soil is dry. Fertilize regularly during growing season.",
			AffectedPlants: []string{"All plants", "Most common in overwatered plants"},
		},
		{
			Name: "Brown Leaf Tips", Category: "Environmental", Severity: "Mild", TreatmentDifficulty: "Easy",
			Description:  "Leaf tips turning brown and crispy",
			Icon:         "circle_rounded",
			Color:        "#92400E",
			CommonCauses: []string{"Low humidity", "Over-fertilization", "Salt buildup", "Underwatering"},
			Solutions: []string{
				"Increase humidity with humidifier or pebble tray",
				"Flush soil with water to remove salts",
				"Reduce fertilizer frequency",
				"Trim brown tips with clean scissors",
			},
			Prevention:     "Use filtered water. Maintain 40-60% humidity. Don't over-fertilize.",
			AffectedPlants: []string{"Spider plants", "Dracaena", "Palms", "Ferns"},
		},
		{
			Name: "Root Rot", Category: "Watering", Severity: "Severe", TreatmentDifficulty: "Moderate",
			Description:  "Overwatering causing roots to decay and turn mushy",
			Icon:         "water_damage_rounded",
			Color:        "#DC2626",
			CommonCauses: []string{"Overwatering", "Poor drainage", "Heavy soil", "Oversized pots"},
			Solutions: []string{
				"Remove plant and trim affected roots",
				"Repot in fresh, well-draining soil",
				"Reduce watering frequency significantly",
				"Ensure pot has drainage holes",
			},
			Prevention:     "Water only when soil is dry. Use pots with drainage. Choose appropriate soil mix.",
			AffectedPlants: []string{"Succulents", "Overwatered plants", "Plants in heavy soil"},
		},
		{
			Name: "Wilting", Category: "Watering", Severity: "Moderate", TreatmentDifficulty: "Easy",
			Description:  "Plants drooping or losing turgor pressure",
			Icon:         "arrow_downward_rounded",
			Color:        "#3B82F6",
			CommonCauses: []string{"Underwatering", "Overwatering", "Root issues", "Heat stress"},
			Solutions: []string{
				"Check soil moisture immediately",
				"Water if dry, let dry if overwatered",
				"Move to cooler location if heat stressed",
				"Check roots for damage",
			},
			Prevention:     "Establish consistent watering routine. Protect from extreme temperatures.",
			AffectedPlants: []string{"All plants", "Especially those with high water needs"},
		},
		{
			Name: "Powdery Mildew", Category: "Diseases", Severity: "Moderate", TreatmentDifficulty: "Moderate",
			Description:  "White powdery fungus on leaves and stems",
			Icon:         "science_rounded",
			Color:        "#9333EA",
			CommonCauses: []string{"High humidity", "Poor air circulation", "Cool temperatures", "Crowded plants"},
			Solutions: []string{
				"Improve air circulation around plants",
				"Remove affected leaves",
				"Apply fungicide or baking soda solution",
				"Reduce humidity if possible",
			},
			Prevention:     "Space plants properly. Avoid overhead watering. Ensure good ventilation.",
			AffectedPlants: []string{"Squash", "Cucumbers", "Houseplants", "Outdoor ornamentals"},
		},
		{
			Name: "Leaf Spot", Category: "Diseases", Severity: "Moderate", TreatmentDifficulty: "Easy",
			Description:  "Brown or black spots with yellow halos on leaves",
			Icon:         "brightness_1_rounded",
			Color:        "#8B4513",
			CommonCauses: []string{"Fungal infection", "Bacterial infection", "Water on leaves", "Poor hygiene"},
			Solutions: []string{
				"Remove affected leaves",
				"Avoid overhead watering",
				"Improve air circulation",
				"Apply fungicide if severe",
			},
			Prevention:     "Water at base of plant. Keep leaves dry. Clean pruning tools between uses.",
			AffectedPlants: []string{"Roses", "Vegetables", "Ornamental plants"},
		},
		{
			Name: "Nutrient Deficiency", Category: "Nutrition", Severity: "Moderate", TreatmentDifficulty: "Easy",
			Description:  "Lack of essential nutrients causing various symptoms",
			Icon:         "bloodtype_rounded",
			Color:        "#14B8A6",
			CommonCauses: []string{"Poor soil", "Lack of fertilization", "pH imbalance", "Root damage"},
			Solutions: []string{
				"Test soil pH and nutrients",
				"Apply balanced fertilizer",
				"Use specific nutrient supplements",
				"Repot with fresh nutrient-rich soil",
			},
			Prevention:     "Fertilize regularly during growing season. Use quality potting mix. Monitor pH.",
			AffectedPlants: []string{"All plants", "Especially container plants"},
		},
	}
}
