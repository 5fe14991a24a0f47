package rules

import "strings"

const (
	sharedTagWeight = 5
	ageScoreCeiling = 10
)

// TagSet lower-cases and comma-splits a raw interests string into a set.
// Empty or missing interests yield an empty set.
func TagSet(interests string) map[string]struct{} {
	tags := make(map[string]struct{})
	for _, tag := range strings.Split(strings.ToLower(interests), ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags[tag] = struct{}{}
	}
	return tags
}

// MatchScore is 5 points per shared interest tag plus an age-proximity term
// that decays from 10 to 0 as the age gap grows. Both terms are commutative,
// so MatchScore(a, b, ...) == MatchScore(b, a, ...) holds for all inputs.
func MatchScore(interestsA, interestsB string, ageA, ageB int) int {
	tagsA := TagSet(interestsA)
	tagsB := TagSet(interestsB)

	shared := 0
	for tag := range tagsA {
		if _, ok := tagsB[tag]; ok {
			shared++
		}
	}

	ageDiff := ageA - ageB
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	ageScore := ageScoreCeiling - ageDiff
	if ageScore < 0 {
		ageScore = 0
	}

	return shared*sharedTagWeight + ageScore
}
