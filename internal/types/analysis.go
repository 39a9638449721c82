package types

// Gender is the biological sex used for metabolic calculations.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel describes habitual physical activity.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityAthlete   ActivityLevel = "athlete"
)

// Goal is the user's current nutrition goal.
type Goal string

const (
	GoalFatLoss     Goal = "fat_loss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscle_gain"
)

// AnalysisMode selects the kind of analysis the provider performs.
type AnalysisMode string

const (
	ModeSingleFood         AnalysisMode = "single_food"
	ModeComparison         AnalysisMode = "comparison"
	ModeMealPlan           AnalysisMode = "meal_plan"
	ModeImageAnalysis      AnalysisMode = "image_analysis"
	ModeCompatibilityCheck AnalysisMode = "compatibility_check"
)

// UserProfile is the per-session user profile. It is immutable per request;
// edits happen only through explicit profile updates on the session.
type UserProfile struct {
	Age           int           `json:"age" binding:"required,gt=0"`
	Gender        Gender        `json:"gender" binding:"required,oneof=male female other"`
	HeightCM      float64       `json:"height_cm" binding:"required,gt=0"`
	WeightKG      float64       `json:"weight_kg" binding:"required,gt=0"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
	Mood          string        `json:"mood,omitempty"`
}

// MetabolicMetrics are derived from a UserProfile on every request and are
// never persisted on their own.
type MetabolicMetrics struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	ActivityFactor float64 `json:"activity_factor"`
}

// AnalysisProfile is the profile as sent to the provider: the raw profile
// merged with the client-computed metabolic metrics, so downstream analysis is
// reproducible and independent of provider-side assumptions.
type AnalysisProfile struct {
	UserProfile
	MetabolicMetrics
}

// DietHistorySummary is the dietary baseline attached to deep-analysis
// requests. Without a real intake tracker a fixed placeholder baseline is used.
type DietHistorySummary struct {
	AvgDailyCalories float64 `json:"avg_daily_calories"`
	AvgDailyProtein  float64 `json:"avg_daily_protein"`
	AvgDailySugar    float64 `json:"avg_daily_sugar"`
	AvgDailyFiber    float64 `json:"avg_daily_fiber"`
	AvgDailySodium   float64 `json:"avg_daily_sodium"`
}

// Macronutrients is the macro breakdown per reference serving.
type Macronutrients struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
}

// Micronutrients covers the subset of micronutrients the report surfaces.
type Micronutrients struct {
	SodiumMG    float64 `json:"sodium_mg"`
	PotassiumMG float64 `json:"potassium_mg"`
	CalciumMG   float64 `json:"calcium_mg"`
	IronMG      float64 `json:"iron_mg"`
	VitaminCMG  float64 `json:"vitamin_c_mg"`
}

// FoodAnalysis is the mandatory core of every analysis response.
type FoodAnalysis struct {
	FoodName        string         `json:"food_name"`
	ServingSize     string         `json:"serving_size"`
	Calories        float64        `json:"calories"`
	Macronutrients  Macronutrients `json:"macronutrients"`
	Micronutrients  Micronutrients `json:"micronutrients"`
	GlycemicIndex   float64        `json:"glycemic_index"`
	GlycemicLoad    float64        `json:"glycemic_load"`
	NutrientDensity float64        `json:"nutrient_density"`
	HealthScore     float64        `json:"health_score"`
	QualityIndex    float64        `json:"quality_index"`
}

// PersonalizedImpact relates the food to the user's own metabolic numbers.
type PersonalizedImpact struct {
	CaloriePercentOfTDEE float64 `json:"calorie_percent_of_tdee"`
	GoalAlignment        string  `json:"goal_alignment"`
	MetabolicImpact      string  `json:"metabolic_impact"`
	Summary              string  `json:"summary"`
}

// RiskLevel is a coarse three-step risk grade.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// RiskPrediction carries the three graded risk fields of the base report.
type RiskPrediction struct {
	DiabetesRisk     RiskLevel `json:"diabetes_risk"`
	HeartDiseaseRisk RiskLevel `json:"heart_disease_risk"`
	ObesityRisk      RiskLevel `json:"obesity_risk"`
}

// GutHealthAnalysis summarizes the food's effect on the gut.
type GutHealthAnalysis struct {
	MicrobiomeImpact    string  `json:"microbiome_impact"`
	FermentabilityScore float64 `json:"fermentability_score"`
	DigestionNotes      string  `json:"digestion_notes"`
}

// FoodCompatibility lists pairing guidance.
type FoodCompatibility struct {
	PairsWellWith      []string `json:"pairs_well_with"`
	AvoidCombiningWith []string `json:"avoid_combining_with"`
	Notes              string   `json:"notes"`
}

// UIMetadata carries presentation hints chosen by the provider. The core
// treats them as opaque strings.
type UIMetadata struct {
	AccentColor string `json:"accent_color"`
	Icon        string `json:"icon"`
	Headline    string `json:"headline"`
}

// DownloadableReport is the printable HTML report, present only when the
// request asked for one.
type DownloadableReport struct {
	Title       string `json:"title"`
	HTMLContent string `json:"html_content"`
}

// ReportSection is one section of the deep preventive-health report.
type ReportSection struct {
	Summary     string   `json:"summary"`
	KeyFindings []string `json:"key_findings"`
}

// PreventiveHealthData is the independently fetched deep report. Once attached
// to an AnalysisResponse it must survive later non-deep re-fetches of the same
// query.
type PreventiveHealthData struct {
	MetabolicAnalysis       ReportSection `json:"metabolic_analysis"`
	GlycemicInsulinResponse ReportSection `json:"glycemic_insulin_response"`
	CardiovascularImpact    ReportSection `json:"cardiovascular_impact"`
	CognitiveImpact         ReportSection `json:"cognitive_impact"`
	GutMicrobiomeDetail     ReportSection `json:"gut_microbiome_detail"`
	DeficiencyProjection    ReportSection `json:"deficiency_projection"`
	BodyCompositionImpact   ReportSection `json:"body_composition_impact"`
	OverallSummary          ReportSection `json:"overall_summary"`
	GeneticSimulation       ReportSection `json:"genetic_simulation"`
	LongTermTrend           ReportSection `json:"long_term_trend"`
	HormonalImpact          ReportSection `json:"hormonal_impact"`
	SkinHealthImpact        ReportSection `json:"skin_health_impact"`
	SixMonthSimulation      ReportSection `json:"six_month_simulation"`
	Disclaimer              string        `json:"disclaimer"`
}

// AnalysisResponse is the validated structured result of a primary analysis.
type AnalysisResponse struct {
	FoodAnalysis         *FoodAnalysis         `json:"food_analysis,omitempty"`
	PersonalizedImpact   *PersonalizedImpact   `json:"personalized_impact,omitempty"`
	RiskPrediction       *RiskPrediction       `json:"risk_prediction,omitempty"`
	GutHealthAnalysis    *GutHealthAnalysis    `json:"gut_health_analysis,omitempty"`
	FoodCompatibility    *FoodCompatibility    `json:"food_compatibility,omitempty"`
	AIRecommendations    []string              `json:"ai_recommendations,omitempty"`
	UIMetadata           *UIMetadata           `json:"ui_metadata,omitempty"`
	DownloadableReport   *DownloadableReport   `json:"downloadable_report,omitempty"`
	PreventiveHealthData *PreventiveHealthData `json:"preventive_health_data,omitempty"`
	// Error signals a recognized-failure short-circuit by the provider itself,
	// distinct from transport errors.
	Error string `json:"error,omitempty"`
}

// Complete reports whether the response carries the mandatory food_analysis
// substructure. An incomplete response is shown to the user as a "try a
// simpler query" notice, not raised as an error.
func (r *AnalysisResponse) Complete() bool {
	return r != nil && r.FoodAnalysis != nil
}

// MacroEstimate is the best-effort quick-scan hint.
type MacroEstimate struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}
