package conversation

import "strings"

type Category string

const (
	CategoryTrending    Category = "trending"
	CategorySeasonal    Category = "seasonal"
	CategoryLocal       Category = "local"
	CategoryBirthday    Category = "birthday"
	CategoryAnniversary Category = "anniversary"
	CategoryGraduation  Category = "graduation"
	CategoryFlowers     Category = "flowers"
	CategoryGeneral     Category = "general"
)

// Categories lists every category in classification priority order.
var Categories = []Category{
	CategoryTrending,
	CategorySeasonal,
	CategoryLocal,
	CategoryBirthday,
	CategoryAnniversary,
	CategoryGraduation,
	CategoryFlowers,
	CategoryGeneral,
}

type rule struct {
	match    func(string) bool
	category Category
	text     string
}

func containsAny(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
		return false
	}
}

// Order matters: the first matching rule wins.
var rules = []rule{
	{containsAny("trending gifts", "show trending"), CategoryTrending, "Here are the most popular gifts in Jeddah right now:"},
	{containsAny("seasonal", "special"), CategorySeasonal, "Check out these seasonal specials perfect for this time of year:"},
	{containsAny("local favorites", "jeddah favorites"), CategoryLocal, "These are the most loved gifts by Jeddah residents:"},
	{containsAny("birthday"), CategoryBirthday, "Perfect! Here are some wonderful birthday gift options:"},
	{containsAny("anniversary"), CategoryAnniversary, "How romantic! Here are beautiful anniversary gifts:"},
	{containsAny("graduation"), CategoryGraduation, "Congratulations! Here are perfect graduation celebration gifts:"},
	{containsAny("flower", "bouquet"), CategoryFlowers, "Beautiful choice! Here are our stunning flower arrangements:"},
}

const generalText = "I've found some wonderful options for you:"

// Classify maps an utterance onto exactly one category. Anything unmatched is general.
func Classify(utterance string) Category {
	s := strings.ToLower(utterance)
	for _, r := range rules {
		if r.match(s) {
			return r.category
		}
	}
	return CategoryGeneral
}

// ResponseText is the assistant's opening line for a category.
func ResponseText(c Category) string {
	for _, r := range rules {
		if r.category == c {
			return r.text
		}
	}
	return generalText
}
