// Package metabolic derives resting and total energy expenditure from a user
// profile using the Mifflin-St Jeor equation. The results are attached to
// every provider request so the downstream analysis does not depend on
// provider-side assumptions.
package metabolic

import "github.com/nutrilens/backend/internal/types"

// activityFactors maps activity levels to their TDEE multiplier. This is the
// single source of truth for valid activity levels.
var activityFactors = map[types.ActivityLevel]float64{
	types.ActivitySedentary: 1.2,
	types.ActivityLight:     1.375,
	types.ActivityModerate:  1.55,
	types.ActivityActive:    1.725,
	types.ActivityAthlete:   1.9,
}

// defaultFactor is used when the activity level is missing or unrecognized.
const defaultFactor = 1.2

// Calculate computes BMR, activity factor and TDEE for a profile. It is a
// total function: any profile yields a result.
func Calculate(p types.UserProfile) types.MetabolicMetrics {
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == types.GenderMale {
		bmr += 5
	} else {
		// Female and "other" share the female constant.
		bmr -= 161
	}

	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		factor = defaultFactor
	}

	return types.MetabolicMetrics{
		BMR:            bmr,
		TDEE:           bmr * factor,
		ActivityFactor: factor,
	}
}

// ActivityFactor returns the multiplier for an activity level, defaulting to
// sedentary for unknown values.
func ActivityFactor(level types.ActivityLevel) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return defaultFactor
}
