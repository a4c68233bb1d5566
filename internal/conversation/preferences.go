package conversation

import "strings"

var preferenceRules = []struct {
	tag      string
	keywords []string
}{
	{"budget-friendly", []string{"cheap", "budget", "affordable"}},
	{"luxury", []string{"luxury", "premium", "expensive"}},
	{"same-day-delivery", []string{"same day", "urgent", "today"}},
	{"modern", []string{"modern", "contemporary"}},
	{"traditional", []string{"traditional", "classic"}},
}

// ExtractPreferences returns every preference tag the utterance mentions.
func ExtractPreferences(utterance string) []string {
	s := strings.ToLower(utterance)
	var tags []string
	for _, r := range preferenceRules {
		if containsAny(r.keywords...)(s) {
			tags = append(tags, r.tag)
		}
	}
	return tags
}
