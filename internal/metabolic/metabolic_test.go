package metabolic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutrilens/backend/internal/types"
)

func TestCalculateMale(t *testing.T) {
	profile := types.UserProfile{
		Age:           30,
		Gender:        types.GenderMale,
		HeightCM:      175,
		WeightKG:      70,
		ActivityLevel: types.ActivityModerate,
	}

	m := Calculate(profile)

	assert.InDelta(t, 1678.75, m.BMR, 1e-9)
	assert.InDelta(t, 1.55, m.ActivityFactor, 1e-9)
	assert.InDelta(t, 2602.1625, m.TDEE, 1e-9)
}

func TestCalculateFemaleAndOtherShareConstant(t *testing.T) {
	base := types.UserProfile{
		Age:           25,
		HeightCM:      165,
		WeightKG:      60,
		ActivityLevel: types.ActivityLight,
	}

	female := base
	female.Gender = types.GenderFemale
	other := base
	other.Gender = types.GenderOther

	mf := Calculate(female)
	mo := Calculate(other)

	// 10*60 + 6.25*165 - 5*25 - 161 = 1345.25
	assert.InDelta(t, 1345.25, mf.BMR, 1e-9)
	assert.Equal(t, mf, mo)
}

func TestCalculateActivityFactors(t *testing.T) {
	cases := []struct {
		level  types.ActivityLevel
		factor float64
	}{
		{types.ActivitySedentary, 1.2},
		{types.ActivityLight, 1.375},
		{types.ActivityModerate, 1.55},
		{types.ActivityActive, 1.725},
		{types.ActivityAthlete, 1.9},
		{"", 1.2},
		{"cosmonaut", 1.2},
	}

	for _, tc := range cases {
		t.Run(string(tc.level), func(t *testing.T) {
			profile := types.UserProfile{
				Age:           40,
				Gender:        types.GenderMale,
				HeightCM:      180,
				WeightKG:      80,
				ActivityLevel: tc.level,
			}
			m := Calculate(profile)
			assert.InDelta(t, tc.factor, m.ActivityFactor, 1e-9)
			assert.InDelta(t, m.BMR*tc.factor, m.TDEE, 1e-9)
		})
	}
}
