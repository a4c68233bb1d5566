package conversation

import (
	"strings"

	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
)

// Catalog is the read-only product source the engine draws from.
type Catalog interface {
	Products() []domain.Product
	TopRated(n int) []domain.Product
	ByVendor(vendor string) []domain.Product
	VendorGroups() []domain.VendorGroup
}

var seasonalMix = []string{"Rose", "Chocolate", "Cake", "Dining", "Balloon", "Perfume"}

// SelectProducts picks the products to show for an utterance. Placeholder
// and broken images are never returned.
func SelectProducts(cat Catalog, utterance string, interactionCount int) []domain.Product {
	s := strings.ToLower(utterance)
	all := cat.Products()
	n := config.ProductSelectionSize

	var picked []domain.Product
	switch {
	case containsAny("trending gifts", "show trending")(s):
		picked = cat.TopRated(n)
	case containsAny("seasonal", "special")(s):
		for _, frag := range seasonalMix {
			if p, ok := firstNamed(all, frag); ok && !containsProduct(picked, p.ID) {
				picked = append(picked, p)
			}
		}
		picked = topUp(picked, all, n)
	case containsAny("local favorites", "jeddah")(s):
		for _, p := range all {
			if isLocal(p) {
				picked = append(picked, p)
			}
		}
		if len(picked) > n {
			picked = picked[:n]
		}
		picked = topUp(picked, all, n)
	default:
		picked = rotate(all, interactionCount*2)
		if len(picked) > n {
			picked = picked[:n]
		}
	}

	if len(picked) < config.MinProductSelection {
		picked = topUp(picked, all, n)
	}
	return catalog.Usable(picked)
}

func isLocal(p domain.Product) bool {
	return strings.Contains(p.Name, "Dining") ||
		strings.Contains(p.Name, "Restaurant") ||
		strings.Contains(p.Vendor, "Jeddah") ||
		strings.Contains(p.Name, "Rose") ||
		strings.Contains(p.Name, "Gold")
}

func firstNamed(all []domain.Product, fragment string) (domain.Product, bool) {
	for _, p := range all {
		if strings.Contains(p.Name, fragment) {
			return p, true
		}
	}
	return domain.Product{}, false
}

func containsProduct(list []domain.Product, id string) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}

// topUp appends catalog products not yet picked until there are n.
func topUp(picked, all []domain.Product, n int) []domain.Product {
	for _, p := range all {
		if len(picked) >= n {
			break
		}
		if !containsProduct(picked, p.ID) {
			picked = append(picked, p)
		}
	}
	return picked
}

func rotate(all []domain.Product, by int) []domain.Product {
	if len(all) == 0 {
		return nil
	}
	off := by % len(all)
	out := make([]domain.Product, 0, len(all))
	out = append(out, all[off:]...)
	return append(out, all[:off]...)
}
