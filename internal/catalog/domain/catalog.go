package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Money serializes as a JSON number to match the storefront contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. JSON field names mirror the storefront contract.
type Product struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"nome"`
	Description         string          `json:"descricao"`
	Price               decimal.Decimal `json:"preco"`
	Category            string          `json:"categoria"`
	ImageURL            string          `json:"imagem_url"`
	FreeComplementCount int             `json:"num_complementos_gratis"`
}

// Complement is a purchasable add-on, exposed with normalized field names.
type Complement struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// GroupedProducts is an ordered category -> products mapping. Categories keep
// the order they were first seen in; products keep their input order within a
// category. A plain Go map would lose both.
type GroupedProducts struct {
	categories []string
	byCategory map[string][]Product
}

// GroupByCategory buckets products by category, preserving input order.
func GroupByCategory(products []Product) *GroupedProducts {
	g := &GroupedProducts{
		byCategory: make(map[string][]Product),
	}
	for _, p := range products {
		if _, seen := g.byCategory[p.Category]; !seen {
			g.categories = append(g.categories, p.Category)
		}
		g.byCategory[p.Category] = append(g.byCategory[p.Category], p)
	}
	return g
}

// Categories returns category names in first-seen order.
func (g *GroupedProducts) Categories() []string {
	return g.categories
}

// Products returns the products of one category in input order.
func (g *GroupedProducts) Products(category string) []Product {
	return g.byCategory[category]
}

// MarshalJSON emits a JSON object whose keys follow first-seen category order.
func (g *GroupedProducts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range g.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(g.byCategory[category])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MapComplementsByID shapes add-ons as an id-keyed lookup map.
func MapComplementsByID(complements []Complement) map[int64]Complement {
	m := make(map[int64]Complement, len(complements))
	for _, c := range complements {
		m[c.ID] = c
	}
	return m
}
