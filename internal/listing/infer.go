package listing

import "regexp"

// Evidence patterns for feature inference over listing free text. Matches are
// case-insensitive and word-bounded so "scooling" never counts as "cooling".
var (
	airConRe         = regexp.MustCompile(`(?i)\b(A/?C|air.?con(ditioning)?|split.?system|cooling)\b`)
	walkInShowerRe   = regexp.MustCompile(`(?i)\b(walk.in showers?)\b`)
	showerOverBathRe = regexp.MustCompile(`(?i)\b(shower.over.bath(tub)?s?)\b`)
	carpetRe         = regexp.MustCompile(`(?i)\bcarpet(ed|ing)?\b`)
	woodFloorRe      = regexp.MustCompile(`(?i)\b(((timber|(hard)?wood(en)?) floor(ing|s|boards)?)|floorboards)\b`)
	secureEntranceRe = regexp.MustCompile(`(?i)\b(secur(e|ity) ?(building)? entr(ance|y)|intercom)\b`)
)

// Features holds the ternary answers inferred for one listing.
type Features struct {
	AirCon         Answer
	RealShower     Answer
	Carpeted       Answer
	SecureEntrance Answer
}

// InferFeatures pattern-matches the assembled description/feature text and
// resolves each feature to a ternary answer.
func InferFeatures(text string) Features {
	return Features{
		AirCon:         resolveAnswer(airConRe.MatchString(text), false),
		RealShower:     resolveAnswer(walkInShowerRe.MatchString(text), showerOverBathRe.MatchString(text)),
		Carpeted:       resolveAnswer(carpetRe.MatchString(text), woodFloorRe.MatchString(text)),
		SecureEntrance: resolveAnswer(secureEntranceRe.MatchString(text), false),
	}
}

// resolveAnswer collapses two evidence booleans into one Answer. Yes-evidence
// wins even when no-evidence is also present; no evidence at all is Maybe.
// Every feature shares this function so the tie-break is identical everywhere.
func resolveAnswer(yes, no bool) Answer {
	if yes {
		return Yes
	}
	if no {
		return No
	}
	return Maybe
}
