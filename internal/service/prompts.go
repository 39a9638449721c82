package service

import (
	"fmt"
	"strings"

	"github.com/nutrilens/backend/internal/types"
)

const primaryInstructionBase = `You are a clinical nutrition analyst. Analyze the food described in the payload for the given user and produce a structured nutrition report.

Ground every figure in the user_profile section of the payload: bmr, tdee and activity_factor are precomputed on the client and must be taken as given, never re-derived.

Scoring rules:
- health_score and quality_index are 0-100 composites of macro and micronutrient ratios.
- risk fields use exactly Low, Moderate or High.
- ai_recommendations is an ordered list of short, actionable sentences, most important first.

If the query does not describe food, set the error field to a short explanation and leave the numeric fields at zero.`

const reportSectionInstruction = `
Report generation:
- Populate downloadable_report with a complete, self-contained printable HTML document summarizing the full analysis. Inline all styles; no external assets.`

const noReportInstruction = `
Report generation:
- Do not generate a downloadable report. Leave downloadable_report absent.`

var modeInstructions = map[types.AnalysisMode]string{
	types.ModeSingleFood:         "Analyze the single food in food_query.",
	types.ModeComparison:         "food_query names several foods. Compare them and report on the best choice for the user's goal, noting the runners-up in the summary fields.",
	types.ModeMealPlan:           "food_query describes a full meal or day of eating. Analyze it as a combined intake.",
	types.ModeImageAnalysis:      "Identify the food in the attached photo, then analyze it. Use food_query as an optional hint.",
	types.ModeCompatibilityCheck: "food_query names foods eaten together. Focus the analysis on their compatibility and combined effect.",
}

// primarySystemInstruction assembles the instruction set for a primary
// analysis call. When no report was requested the report section is replaced
// with an explicit do-not-generate directive so no generation cost is wasted
// and no report leaks into non-report responses.
func primarySystemInstruction(mode types.AnalysisMode, downloadReport bool) string {
	var b strings.Builder
	b.WriteString(primaryInstructionBase)
	b.WriteString("\n\nMode: ")
	if inst, ok := modeInstructions[mode]; ok {
		b.WriteString(inst)
	} else {
		b.WriteString(modeInstructions[types.ModeSingleFood])
	}
	if downloadReport {
		b.WriteString(reportSectionInstruction)
	} else {
		b.WriteString(noReportInstruction)
	}
	return b.String()
}

const deepSystemInstruction = `You are a preventive-health analyst. Using the food_data, user_profile and diet_history_summary in the payload, produce the full preventive-health report defined by the response schema.

Each section needs a concise summary paragraph and two to five key findings. Findings must reference the user's actual metabolic numbers where relevant. The six_month_simulation and genetic_simulation sections are illustrative projections and must say so.

Always fill the disclaimer field with a statement that this report is informational and not medical advice.`

const quickScanInstruction = `You are a nutrition lookup service. Return an approximate macro estimate for one typical serving of the named food. Numbers only, no prose.`

const audioSummaryInstruction = "Read the following nutrition summary aloud in a calm, clear voice: "

// buildPrimaryPrompt renders the primary-analysis payload as the user prompt.
func buildPrimaryPrompt(payload *primaryPayload, history []*types.AnalysisResponse) (string, error) {
	body, err := marshalPayload(payload)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Payload:\n")
	b.Write(body)

	// Recent analyses give the provider continuity context, most recent first.
	if len(history) > 0 {
		b.WriteString("\n\nRecently analyzed foods, most recent first:\n")
		for _, prior := range history {
			if prior.FoodAnalysis == nil {
				continue
			}
			fmt.Fprintf(&b, "- %s (%.0f kcal, health score %.0f)\n",
				prior.FoodAnalysis.FoodName, prior.FoodAnalysis.Calories, prior.FoodAnalysis.HealthScore)
		}
	}

	return b.String(), nil
}

func buildDeepPrompt(payload *deepPayload) (string, error) {
	body, err := marshalPayload(payload)
	if err != nil {
		return "", err
	}
	return "Payload:\n" + string(body), nil
}
