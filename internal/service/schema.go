package service

// Schema expresses the structural constraints sent with every generation call
// that expects structured JSON. The provider enforces the shape, so the
// gateway can unmarshal responses into the typed contract directly.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func stringSchema() *Schema { return &Schema{Type: "STRING"} }

func numberSchema() *Schema { return &Schema{Type: "NUMBER"} }

func stringArraySchema() *Schema {
	return &Schema{Type: "ARRAY", Items: stringSchema()}
}

func objectSchema(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "OBJECT", Properties: props, Required: required}
}

func enumSchema(values ...string) *Schema {
	return &Schema{Type: "STRING", Enum: values}
}

func riskLevelSchema() *Schema {
	return enumSchema("Low", "Moderate", "High")
}

func foodAnalysisSchema() *Schema {
	return objectSchema(map[string]*Schema{
		"food_name":    stringSchema(),
		"serving_size": stringSchema(),
		"calories":     numberSchema(),
		"macronutrients": objectSchema(map[string]*Schema{
			"protein_g": numberSchema(),
			"carbs_g":   numberSchema(),
			"fat_g":     numberSchema(),
			"fiber_g":   numberSchema(),
			"sugar_g":   numberSchema(),
		}, "protein_g", "carbs_g", "fat_g", "fiber_g", "sugar_g"),
		"micronutrients": objectSchema(map[string]*Schema{
			"sodium_mg":    numberSchema(),
			"potassium_mg": numberSchema(),
			"calcium_mg":   numberSchema(),
			"iron_mg":      numberSchema(),
			"vitamin_c_mg": numberSchema(),
		}),
		"glycemic_index":   numberSchema(),
		"glycemic_load":    numberSchema(),
		"nutrient_density": numberSchema(),
		"health_score":     &Schema{Type: "NUMBER", Description: "Composite health score from 0 to 100."},
		"quality_index":    &Schema{Type: "NUMBER", Description: "Composite quality index from 0 to 100."},
	},
		"food_name", "serving_size", "calories", "macronutrients",
		"glycemic_index", "nutrient_density", "health_score", "quality_index",
	)
}

// primaryAnalysisSchema constrains the base nutrition report. The downloadable
// report property is declared even for non-report calls; the system
// instruction forbids generating it in that case.
func primaryAnalysisSchema() *Schema {
	return objectSchema(map[string]*Schema{
		"food_analysis": foodAnalysisSchema(),
		"personalized_impact": objectSchema(map[string]*Schema{
			"calorie_percent_of_tdee": numberSchema(),
			"goal_alignment":          stringSchema(),
			"metabolic_impact":        stringSchema(),
			"summary":                 stringSchema(),
		}, "calorie_percent_of_tdee", "summary"),
		"risk_prediction": objectSchema(map[string]*Schema{
			"diabetes_risk":      riskLevelSchema(),
			"heart_disease_risk": riskLevelSchema(),
			"obesity_risk":       riskLevelSchema(),
		}, "diabetes_risk", "heart_disease_risk", "obesity_risk"),
		"gut_health_analysis": objectSchema(map[string]*Schema{
			"microbiome_impact":    stringSchema(),
			"fermentability_score": numberSchema(),
			"digestion_notes":      stringSchema(),
		}, "microbiome_impact"),
		"food_compatibility": objectSchema(map[string]*Schema{
			"pairs_well_with":      stringArraySchema(),
			"avoid_combining_with": stringArraySchema(),
			"notes":                stringSchema(),
		}),
		"ai_recommendations": stringArraySchema(),
		"ui_metadata": objectSchema(map[string]*Schema{
			"accent_color": stringSchema(),
			"icon":         stringSchema(),
			"headline":     stringSchema(),
		}),
		"downloadable_report": objectSchema(map[string]*Schema{
			"title":        stringSchema(),
			"html_content": &Schema{Type: "STRING", Description: "Self-contained printable HTML document."},
		}, "title", "html_content"),
		"error": &Schema{Type: "STRING", Description: "Set only when the query cannot be analyzed as food."},
	},
		"food_analysis", "personalized_impact", "risk_prediction",
		"gut_health_analysis", "food_compatibility", "ai_recommendations",
		"ui_metadata",
	)
}

func reportSectionSchema() *Schema {
	return objectSchema(map[string]*Schema{
		"summary":      stringSchema(),
		"key_findings": stringArraySchema(),
	}, "summary", "key_findings")
}

// deepAnalysisSchema constrains the preventive-health report: thirteen
// required sections plus a mandatory disclaimer.
func deepAnalysisSchema() *Schema {
	sections := []string{
		"metabolic_analysis",
		"glycemic_insulin_response",
		"cardiovascular_impact",
		"cognitive_impact",
		"gut_microbiome_detail",
		"deficiency_projection",
		"body_composition_impact",
		"overall_summary",
		"genetic_simulation",
		"long_term_trend",
		"hormonal_impact",
		"skin_health_impact",
		"six_month_simulation",
	}

	props := make(map[string]*Schema, len(sections)+1)
	for _, name := range sections {
		props[name] = reportSectionSchema()
	}
	props["disclaimer"] = &Schema{Type: "STRING", Description: "Medical disclaimer shown with the report."}

	required := append(append([]string(nil), sections...), "disclaimer")
	return objectSchema(props, required...)
}

func quickScanSchema() *Schema {
	return objectSchema(map[string]*Schema{
		"calories":  numberSchema(),
		"protein_g": numberSchema(),
		"carbs_g":   numberSchema(),
		"fat_g":     numberSchema(),
	}, "calories", "protein_g", "carbs_g", "fat_g")
}
