package rules

import (
	"github.com/jordanhale/emberline/internal/domain/enums"
)

// Compat is the resolved visibility policy for one requester. TargetGenders
// and TargetOrientations are coarse set filters a repository may push into
// its query; when BisexualRule is set, Allows is the authoritative
// per-candidate check and the set filters are only a pre-narrowing hint.
type Compat struct {
	RequesterGender    enums.Gender
	TargetGenders      []enums.Gender
	TargetOrientations []enums.Orientation
	BisexualRule       bool
}

// ResolveCompat maps a requester's gender and orientation to the candidate
// population that may be offered to them:
//
//	straight  -> opposite gender, {straight, bisexual}
//	gay       -> same gender, {gay, bisexual}
//	bisexual  -> both genders, asymmetric per-candidate rule
//	otherwise -> both genders, all orientations
func ResolveCompat(gender enums.Gender, orientation enums.Orientation) Compat {
	compat := Compat{RequesterGender: gender}

	switch orientation {
	case enums.OrientationStraight:
		compat.TargetGenders = []enums.Gender{gender.Opposite()}
		compat.TargetOrientations = []enums.Orientation{enums.OrientationStraight, enums.OrientationBisexual}
	case enums.OrientationGay:
		compat.TargetGenders = []enums.Gender{gender}
		compat.TargetOrientations = []enums.Orientation{enums.OrientationGay, enums.OrientationBisexual}
	case enums.OrientationBisexual:
		compat.TargetGenders = []enums.Gender{enums.GenderMale, enums.GenderFemale}
		compat.TargetOrientations = []enums.Orientation{enums.OrientationStraight, enums.OrientationGay, enums.OrientationBisexual}
		compat.BisexualRule = true
	default:
		compat.TargetGenders = []enums.Gender{enums.GenderMale, enums.GenderFemale}
		compat.TargetOrientations = []enums.Orientation{enums.OrientationStraight, enums.OrientationGay, enums.OrientationBisexual}
	}

	return compat
}

// Allows reports whether a candidate with the given gender and orientation
// may be shown to the requester. For a bisexual requester the set filters
// alone would admit incompatible pairs (a straight candidate of the same
// gender), so same-gender candidates must be gay or bisexual and
// opposite-gender candidates must be straight or bisexual.
func (c Compat) Allows(candidateGender enums.Gender, candidateOrientation enums.Orientation) bool {
	if !containsGender(c.TargetGenders, candidateGender) {
		return false
	}
	if !containsOrientation(c.TargetOrientations, candidateOrientation) {
		return false
	}

	if !c.BisexualRule {
		return true
	}

	if candidateGender == c.RequesterGender {
		return candidateOrientation == enums.OrientationGay || candidateOrientation == enums.OrientationBisexual
	}
	return candidateOrientation == enums.OrientationStraight || candidateOrientation == enums.OrientationBisexual
}

func containsGender(set []enums.Gender, value enums.Gender) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}

func containsOrientation(set []enums.Orientation, value enums.Orientation) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}
