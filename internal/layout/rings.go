// Package layout places a cell's pattern symbol on concentric rings.
//
// The layout is a pure function of (gift, pattern); rendering the placements
// onto a surface is left to the caller.
package layout

import (
	"math"

	"github.com/mesh-intelligence/giftgrid/internal/remote"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Canvas and symbol geometry.
const (
	CanvasSize = 256
	CenterX    = 128.0
	CenterY    = 128.0
	SymbolSize = 32.0

	// Spacing is the target arc distance between symbols as a multiple of
	// SymbolSize.
	Spacing = 1.4

	// OddRingOffset staggers odd rings against even ones, in degrees.
	OddRingOffset = 15.0
)

// Radii are the ring radii, innermost first.
var Radii = [...]float64{50, 90, 130, 170}

// Symbol is the single image every placement of a layout refers to.
type Symbol struct {
	Gift    types.Gift `json:"gift" yaml:"gift"`
	Pattern string     `json:"pattern" yaml:"pattern"`
	Path    string     `json:"path" yaml:"path"`
}

// Placement is the top-left corner of one symbol copy.
type Placement struct {
	Ring  int     `json:"ring" yaml:"ring"`
	Index int     `json:"index" yaml:"index"`
	Angle float64 `json:"angle" yaml:"angle"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// Layout is the full ring arrangement for one (gift, pattern) pair.
type Layout struct {
	Symbol     *Symbol     `json:"symbol" yaml:"symbol"`
	Placements []Placement `json:"placements" yaml:"placements"`
}

// Empty reports whether the layout has nothing to draw.
func (l Layout) Empty() bool {
	return len(l.Placements) == 0
}

// SymbolCount returns how many symbols fit on a ring of radius r.
func SymbolCount(r float64) int {
	return int(math.Floor(2 * math.Pi * r / (SymbolSize * Spacing)))
}

// RingOffset returns the angular offset of ring i in degrees.
func RingOffset(i int) float64 {
	if i%2 == 0 {
		return 0
	}
	return OddRingOffset
}

// Rings computes the layout for gift and pattern. Either being empty yields
// an empty layout.
func Rings(gift types.Gift, pattern string) Layout {
	if gift == "" || pattern == "" {
		return Layout{}
	}

	sym := &Symbol{
		Gift:    gift,
		Pattern: pattern,
		Path:    remote.PatternImagePath(gift, pattern, remote.SymbolSize),
	}

	var placements []Placement
	for i, r := range Radii {
		n := SymbolCount(r)
		if n == 0 {
			continue
		}
		step := 360.0 / float64(n)
		offset := RingOffset(i)
		for k := 0; k < n; k++ {
			deg := float64(k)*step + offset
			rad := deg * math.Pi / 180
			placements = append(placements, Placement{
				Ring:  i,
				Index: k,
				Angle: deg,
				X:     CenterX + r*math.Cos(rad) - SymbolSize/2,
				Y:     CenterY + r*math.Sin(rad) - SymbolSize/2,
			})
		}
	}
	return Layout{Symbol: sym, Placements: placements}
}
