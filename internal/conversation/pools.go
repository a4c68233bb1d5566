package conversation

import "github.com/set-night/giftshop/internal/domain"

type pool struct {
	category    Category
	suggestions []domain.Suggestion
}

// Declaration order is also the order used to top up an exhausted pool.
var pools = []pool{
	{CategoryBirthday, []domain.Suggestion{
		{ID: "birthday-age-specific", Label: "Show age-specific gifts", SearchQuery: "Birthday gifts by age group"},
		{ID: "birthday-surprise", Label: "Show surprise packages", SearchQuery: "Birthday surprise gift packages"},
		{ID: "birthday-themed", Label: "Show themed parties", SearchQuery: "Themed birthday celebration packages"},
		{ID: "birthday-memories", Label: "Show memory keepsakes", SearchQuery: "Personalized birthday keepsake gifts"},
		{ID: "birthday-experience", Label: "Show experiences", SearchQuery: "Birthday experience gifts Jeddah"},
		{ID: "birthday-luxury", Label: "Show premium options", SearchQuery: "Luxury birthday gifts and celebrations"},
		{ID: "birthday-custom", Label: "Create custom package", SearchQuery: "Custom birthday gift combinations"},
		{ID: "birthday-delivery", Label: "Same-day delivery", SearchQuery: "Same-day birthday gift delivery"},
		{ID: "birthday-budget", Label: "Show budget options", SearchQuery: "Affordable birthday gift ideas"},
	}},
	{CategoryAnniversary, []domain.Suggestion{
		{ID: "anniversary-romantic", Label: "Show romantic setups", SearchQuery: "Romantic anniversary dinner setups"},
		{ID: "anniversary-milestone", Label: "Show milestone gifts", SearchQuery: "Anniversary milestone celebration gifts"},
		{ID: "anniversary-couples", Label: "Show couple experiences", SearchQuery: "Couple experience gifts in Jeddah"},
		{ID: "anniversary-jewelry", Label: "Show jewelry options", SearchQuery: "Anniversary jewelry and accessories"},
		{ID: "anniversary-spa", Label: "Show spa packages", SearchQuery: "Couple spa packages for anniversary"},
		{ID: "anniversary-getaway", Label: "Show staycation deals", SearchQuery: "Anniversary staycation packages Jeddah"},
		{ID: "anniversary-surprise", Label: "Plan surprise celebration", SearchQuery: "Surprise anniversary celebration planning"},
		{ID: "anniversary-photos", Label: "Add photo session", SearchQuery: "Anniversary photo session packages"},
	}},
	{CategoryGraduation, []domain.Suggestion{
		{ID: "graduation-achievement", Label: "Show achievement gifts", SearchQuery: "Graduation achievement celebration gifts"},
		{ID: "graduation-future", Label: "Show career-starter gifts", SearchQuery: "Career starter graduation gifts"},
		{ID: "graduation-party", Label: "Show party packages", SearchQuery: "Graduation party celebration packages"},
		{ID: "graduation-tech", Label: "Show tech gifts", SearchQuery: "Tech gifts for new graduates"},
		{ID: "graduation-professional", Label: "Show professional items", SearchQuery: "Professional graduation gifts"},
		{ID: "graduation-memory", Label: "Show memory books", SearchQuery: "Graduation memory books and keepsakes"},
	}},
	{CategoryFlowers, []domain.Suggestion{
		{ID: "flowers-seasonal", Label: "Show seasonal blooms", SearchQuery: "Seasonal flower arrangements available now"},
		{ID: "flowers-occasion", Label: "Show by occasion", SearchQuery: "Flower arrangements by specific occasions"},
		{ID: "flowers-colors", Label: "Show by color theme", SearchQuery: "Flower arrangements by color preferences"},
		{ID: "flowers-exotic", Label: "Show exotic varieties", SearchQuery: "Exotic and rare flower arrangements"},
		{ID: "flowers-subscription", Label: "Show subscriptions", SearchQuery: "Weekly flower subscription services"},
		{ID: "flowers-corporate", Label: "Show office arrangements", SearchQuery: "Corporate office flower arrangements"},
	}},
	{CategoryGeneral, []domain.Suggestion{
		{ID: "trending-now", Label: "Show trending gifts", SearchQuery: "Most trending gifts this month in Jeddah"},
		{ID: "seasonal-special", Label: "Show seasonal specials", SearchQuery: "Current seasonal gift specials"},
		{ID: "local-favorites", Label: "Show local favorites", SearchQuery: "Most loved gifts by Jeddah residents"},
		{ID: "quick-delivery", Label: "Show quick delivery", SearchQuery: "Gifts available for same-day delivery"},
		{ID: "bundle-deals", Label: "Show combo deals", SearchQuery: "Gift combination packages and deals"},
		{ID: "eco-friendly", Label: "Show eco options", SearchQuery: "Eco-friendly and sustainable gift options"},
	}},
}

// Refinements are the buttons under the curated picks tab. They are never rotated.
var Refinements = []domain.Suggestion{
	{ID: "refine-premium", Label: "Show premium or curated gifts", SearchQuery: "Show me premium or curated gift options"},
	{ID: "refine-budget", Label: "Refine by budget or style", SearchQuery: "Find gifts by budget or style preferences"},
	{ID: "refine-personal", Label: "Make it more personal", SearchQuery: "Find personalized or custom gift options"},
}

// Clicking one of these ends the discovery phase.
var mainCategoryIDs = map[string]bool{
	"trending-now":     true,
	"seasonal-special": true,
	"local-favorites":  true,
}

func IsMainCategory(suggestionID string) bool {
	return mainCategoryIDs[suggestionID]
}

// poolFor returns the pool of a category. Trending, seasonal and local share the general pool.
func poolFor(c Category) []domain.Suggestion {
	for _, p := range pools {
		if p.category == c {
			return p.suggestions
		}
	}
	return poolFor(CategoryGeneral)
}

// LookupSuggestion finds any suggestion button by id, pooled or refinement.
func LookupSuggestion(id string) (domain.Suggestion, bool) {
	for _, p := range pools {
		for _, s := range p.suggestions {
			if s.ID == id {
				return s, true
			}
		}
	}
	for _, s := range Refinements {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Suggestion{}, false
}
