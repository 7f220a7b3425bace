package types

import (
	"fmt"
	"strings"
)

// Gift is the name of a collectible category, unique within the catalog.
type Gift = string

// NormalizeGiftName returns the form of a gift name used in API paths:
// lowercase with spaces replaced by hyphens.
func NormalizeGiftName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// ModelVariant is one appearance of a gift with its rarity weight.
type ModelVariant struct {
	Name           string `json:"name" yaml:"name"`
	RarityPermille int    `json:"rarityPermille" yaml:"rarity_permille"`
}

// PatternVariant is one decorative overlay of a gift with its rarity weight.
type PatternVariant struct {
	Name           string `json:"name" yaml:"name"`
	RarityPermille int    `json:"rarityPermille" yaml:"rarity_permille"`
}

// RarityLabel formats the rarity the way option lists show it.
func (m ModelVariant) RarityLabel() string {
	return rarityLabel(m.RarityPermille)
}

// RarityLabel formats the rarity the way option lists show it.
func (p PatternVariant) RarityLabel() string {
	return rarityLabel(p.RarityPermille)
}

// rarityLabel renders parts-per-thousand as a percentage with one decimal.
func rarityLabel(permille int) string {
	return fmt.Sprintf("%.1f%%", float64(permille)/10)
}

// BackdropHex holds the two gradient stops of a backdrop.
type BackdropHex struct {
	EdgeColor   string `json:"edgeColor" yaml:"edge_color"`
	CenterColor string `json:"centerColor" yaml:"center_color"`
}

// Backdrop is a background gradient shared by all gifts. Backdrop values are
// catalog entries and are never mutated once loaded, so cells share pointers.
type Backdrop struct {
	Name string      `json:"name" yaml:"name"`
	Hex  BackdropHex `json:"hex" yaml:"hex"`
}

// FindBackdrop returns the backdrop with the given name, or nil.
func FindBackdrop(backdrops []*Backdrop, name string) *Backdrop {
	for _, b := range backdrops {
		if b != nil && b.Name == name {
			return b
		}
	}
	return nil
}

// HasModel reports whether name is one of the variants.
func HasModel(variants []ModelVariant, name string) bool {
	for _, v := range variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

// HasPattern reports whether name is one of the variants.
func HasPattern(variants []PatternVariant, name string) bool {
	for _, v := range variants {
		if v.Name == name {
			return true
		}
	}
	return false
}
