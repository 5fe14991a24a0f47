package rules

import (
	"testing"

	"github.com/jordanhale/emberline/internal/domain/enums"
)

func TestResolveCompatPolicyTable(t *testing.T) {
	cases := []struct {
		name             string
		gender           enums.Gender
		orientation      enums.Orientation
		wantGenders      []enums.Gender
		wantOrientations []enums.Orientation
		wantBisexual     bool
	}{
		{
			name:             "straight_male",
			gender:           enums.GenderMale,
			orientation:      enums.OrientationStraight,
			wantGenders:      []enums.Gender{enums.GenderFemale},
			wantOrientations: []enums.Orientation{enums.OrientationStraight, enums.OrientationBisexual},
		},
		{
			name:             "straight_female",
			gender:           enums.GenderFemale,
			orientation:      enums.OrientationStraight,
			wantGenders:      []enums.Gender{enums.GenderMale},
			wantOrientations: []enums.Orientation{enums.OrientationStraight, enums.OrientationBisexual},
		},
		{
			name:             "gay_male",
			gender:           enums.GenderMale,
			orientation:      enums.OrientationGay,
			wantGenders:      []enums.Gender{enums.GenderMale},
			wantOrientations: []enums.Orientation{enums.OrientationGay, enums.OrientationBisexual},
		},
		{
			name:             "bisexual_female",
			gender:           enums.GenderFemale,
			orientation:      enums.OrientationBisexual,
			wantGenders:      []enums.Gender{enums.GenderMale, enums.GenderFemale},
			wantOrientations: []enums.Orientation{enums.OrientationStraight, enums.OrientationGay, enums.OrientationBisexual},
			wantBisexual:     true,
		},
		{
			name:             "unspecified",
			gender:           enums.GenderMale,
			orientation:      enums.OrientationUnspecified,
			wantGenders:      []enums.Gender{enums.GenderMale, enums.GenderFemale},
			wantOrientations: []enums.Orientation{enums.OrientationStraight, enums.OrientationGay, enums.OrientationBisexual},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			compat := ResolveCompat(tc.gender, tc.orientation)
			if len(compat.TargetGenders) != len(tc.wantGenders) {
				t.Fatalf("unexpected gender set: got %v want %v", compat.TargetGenders, tc.wantGenders)
			}
			for i, g := range tc.wantGenders {
				if compat.TargetGenders[i] != g {
					t.Fatalf("unexpected gender set: got %v want %v", compat.TargetGenders, tc.wantGenders)
				}
			}
			if len(compat.TargetOrientations) != len(tc.wantOrientations) {
				t.Fatalf("unexpected orientation set: got %v want %v", compat.TargetOrientations, tc.wantOrientations)
			}
			for i, o := range tc.wantOrientations {
				if compat.TargetOrientations[i] != o {
					t.Fatalf("unexpected orientation set: got %v want %v", compat.TargetOrientations, tc.wantOrientations)
				}
			}
			if compat.BisexualRule != tc.wantBisexual {
				t.Fatalf("unexpected bisexual rule flag: got %v want %v", compat.BisexualRule, tc.wantBisexual)
			}
		})
	}
}

func TestBisexualMaleAsymmetricRule(t *testing.T) {
	compat := ResolveCompat(enums.GenderMale, enums.OrientationBisexual)

	cases := []struct {
		name        string
		gender      enums.Gender
		orientation enums.Orientation
		want        bool
	}{
		{name: "gay_man", gender: enums.GenderMale, orientation: enums.OrientationGay, want: true},
		{name: "bisexual_man", gender: enums.GenderMale, orientation: enums.OrientationBisexual, want: true},
		{name: "straight_woman", gender: enums.GenderFemale, orientation: enums.OrientationStraight, want: true},
		{name: "bisexual_woman", gender: enums.GenderFemale, orientation: enums.OrientationBisexual, want: true},
		{name: "straight_man", gender: enums.GenderMale, orientation: enums.OrientationStraight, want: false},
		{name: "gay_woman", gender: enums.GenderFemale, orientation: enums.OrientationGay, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := compat.Allows(tc.gender, tc.orientation); got != tc.want {
				t.Fatalf("unexpected visibility: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestStraightCompatAllows(t *testing.T) {
	compat := ResolveCompat(enums.GenderFemale, enums.OrientationStraight)

	if !compat.Allows(enums.GenderMale, enums.OrientationStraight) {
		t.Fatalf("straight woman should see straight men")
	}
	if !compat.Allows(enums.GenderMale, enums.OrientationBisexual) {
		t.Fatalf("straight woman should see bisexual men")
	}
	if compat.Allows(enums.GenderMale, enums.OrientationGay) {
		t.Fatalf("straight woman should not see gay men")
	}
	if compat.Allows(enums.GenderFemale, enums.OrientationStraight) {
		t.Fatalf("straight woman should not see women")
	}
}
