// Package catalog holds the fixed gift catalog and the welcome prompts.
// Everything returned is a copy; the catalog never changes after Load.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/set-night/giftshop/internal/config"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type Catalog struct {
	products     []domain.Product
	byID         map[string]int
	vendors      []string
	descriptions map[string]string
	prompts      []domain.Prompt
}

type fileOption struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	Choices  []string `yaml:"choices"`
}

type fileProduct struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Vendor      string       `yaml:"vendor"`
	Price       string       `yaml:"price"`
	Image       string       `yaml:"image"`
	Rating      float64      `yaml:"rating"`
	ReviewCount int          `yaml:"review_count"`
	Description string       `yaml:"description"`
	Options     []fileOption `yaml:"options"`
}

type file struct {
	Vendors []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"vendors"`
	Products []fileProduct `yaml:"products"`
	Prompts  []struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
		Query string `yaml:"query"`
	} `yaml:"prompts"`
}

// Load parses the catalog embedded in the binary.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad is Load for package-level test fixtures.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}

	c := &Catalog{
		byID:         make(map[string]int, len(f.Products)),
		descriptions: make(map[string]string, len(f.Vendors)),
	}
	for _, v := range f.Vendors {
		c.descriptions[v.Name] = v.Description
	}

	seenVendor := make(map[string]bool)
	for i, fp := range f.Products {
		p, err := fp.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i+1, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %q: duplicate id", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
		if !seenVendor[p.Vendor] {
			seenVendor[p.Vendor] = true
			c.vendors = append(c.vendors, p.Vendor)
		}
	}

	for _, fp := range f.Prompts {
		if fp.ID == "" || strings.TrimSpace(fp.Query) == "" {
			return nil, fmt.Errorf("prompt %q: id and query are required", fp.ID)
		}
		c.prompts = append(c.prompts, domain.Prompt{ID: fp.ID, Title: fp.Title, Query: fp.Query})
	}

	return c, nil
}

func (fp fileProduct) toDomain() (domain.Product, error) {
	if fp.ID == "" {
		return domain.Product{}, fmt.Errorf("missing id")
	}
	if fp.Vendor == "" {
		return domain.Product{}, fmt.Errorf("product %q: missing vendor", fp.ID)
	}
	price, err := decimal.NewFromString(fp.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %q: parse price: %w", fp.ID, err)
	}
	if !price.IsPositive() {
		return domain.Product{}, fmt.Errorf("product %q: price must be positive", fp.ID)
	}

	p := domain.Product{
		ID:          fp.ID,
		Name:        fp.Name,
		Vendor:      fp.Vendor,
		Price:       price,
		Image:       fp.Image,
		Rating:      fp.Rating,
		ReviewCount: fp.ReviewCount,
		Description: fp.Description,
	}
	for _, o := range fp.Options {
		t := domain.OptionType(o.Type)
		if !t.Valid() {
			return domain.Product{}, fmt.Errorf("product %q option %q: unknown type %q", fp.ID, o.ID, o.Type)
		}
		if t == domain.OptionSelect && len(o.Choices) == 0 {
			return domain.Product{}, fmt.Errorf("product %q option %q: select without choices", fp.ID, o.ID)
		}
		p.Options = append(p.Options, domain.CustomizationOption{
			ID:       o.ID,
			Name:     o.Name,
			Type:     t,
			Required: o.Required,
			Choices:  append([]string(nil), o.Choices...),
		})
	}
	return p, nil
}

// Products returns every product in declaration order.
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Product(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, domain.ErrProductNotFound)
	}
	return c.products[i], nil
}

// Vendors lists vendor names in order of first appearance.
func (c *Catalog) Vendors() []string {
	return append([]string(nil), c.vendors...)
}

func (c *Catalog) ByVendor(vendor string) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Vendor == vendor {
			out = append(out, p)
		}
	}
	return out
}

// VendorGroups buckets usable products by vendor.
func (c *Catalog) VendorGroups() []domain.VendorGroup {
	groups := make([]domain.VendorGroup, 0, len(c.vendors))
	for _, v := range c.vendors {
		groups = append(groups, c.vendorGroup(v))
	}
	return groups
}

// VendorGroup returns a single vendor's bucket. ok is false for unknown vendors.
func (c *Catalog) VendorGroup(vendor string) (domain.VendorGroup, bool) {
	for _, v := range c.vendors {
		if v == vendor {
			return c.vendorGroup(v), true
		}
	}
	return domain.VendorGroup{}, false
}

// VendorGroupByID looks a bucket up by its slug.
func (c *Catalog) VendorGroupByID(id string) (domain.VendorGroup, bool) {
	for _, v := range c.vendors {
		if Slug(v) == id {
			return c.vendorGroup(v), true
		}
	}
	return domain.VendorGroup{}, false
}

func (c *Catalog) vendorGroup(vendor string) domain.VendorGroup {
	desc := c.descriptions[vendor]
	if desc == "" {
		desc = fmt.Sprintf("Quality products and services from %s.", vendor)
	}
	return domain.VendorGroup{
		ID:          Slug(vendor),
		Name:        vendor,
		Description: desc,
		Products:    Usable(c.ByVendor(vendor)),
	}
}

// TopRated returns the n best rated products. Ties keep catalog order.
func (c *Catalog) TopRated(n int) []domain.Product {
	sorted := c.Products()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// OurPicks is the curated first tab: best rated usable products across vendors.
func (c *Catalog) OurPicks() []domain.Product {
	picks := Usable(c.TopRated(len(c.products)))
	if len(picks) > config.OurPicksSize {
		picks = picks[:config.OurPicksSize]
	}
	return picks
}

func (c *Catalog) Prompts() []domain.Prompt {
	return append([]domain.Prompt(nil), c.prompts...)
}

func (c *Catalog) Prompt(id string) (domain.Prompt, error) {
	for _, p := range c.prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Prompt{}, fmt.Errorf("prompt %q: %w", id, domain.ErrUnknownPrompt)
}

// Usable drops products whose image is a placeholder or failed to load.
func Usable(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.HasUsableImage() {
			out = append(out, p)
		}
	}
	return out
}

var nonSlug = regexp.MustCompile(`\s+`)

// Slug turns a vendor name into a tab id: "Party Central" -> "party-central".
func Slug(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
