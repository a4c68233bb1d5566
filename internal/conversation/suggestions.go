package conversation

import (
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
)

// SelectSuggestions picks at most three unclicked follow-up buttons for a
// category. The conversation depth picks the window into the filtered pool.
func SelectSuggestions(c Category, ctx Context) []domain.Suggestion {
	clicked := make(map[string]bool, len(ctx.ClickedSuggestions))
	for _, id := range ctx.ClickedSuggestions {
		clicked[id] = true
	}

	available := unclicked(poolFor(c), clicked)
	if len(available) < config.MaxSuggestions {
		own := poolCategory(c)
		for _, p := range pools {
			if p.category == own {
				continue
			}
			available = append(available, unclicked(p.suggestions, clicked)...)
		}
	}

	w := config.SuggestionWindow
	var selected []domain.Suggestion
	switch {
	case ctx.Depth <= 0:
		selected = window(available, 0, w)
	case ctx.Depth == 1:
		selected = window(available, w, 2*w)
	default:
		selected = window(available, 2*w, 3*w)
	}

	// Fill from the front of the pool with whatever the window did not yield.
	if len(selected) < config.MaxSuggestions {
		taken := make(map[string]bool, len(selected))
		for _, s := range selected {
			taken[s.ID] = true
		}
		for _, s := range available {
			if len(selected) == config.MaxSuggestions {
				break
			}
			if !taken[s.ID] {
				selected = append(selected, s)
				taken[s.ID] = true
			}
		}
	}

	if len(selected) > config.MaxSuggestions {
		selected = selected[:config.MaxSuggestions]
	}
	return selected
}

// poolCategory is the category whose pool c draws from.
func poolCategory(c Category) Category {
	for _, p := range pools {
		if p.category == c {
			return c
		}
	}
	return CategoryGeneral
}

func unclicked(in []domain.Suggestion, clicked map[string]bool) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(in))
	for _, s := range in {
		if !clicked[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

func window(in []domain.Suggestion, from, to int) []domain.Suggestion {
	if from >= len(in) {
		return nil
	}
	if to > len(in) {
		to = len(in)
	}
	return append([]domain.Suggestion(nil), in[from:to]...)
}
