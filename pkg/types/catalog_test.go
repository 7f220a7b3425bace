package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGiftName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Plush Pepe", "plush-pepe"},
		{"Durov's Cap", "durov's-cap"},
		{"Jack-in-the-Box", "jack-in-the-box"},
		{"B-Day Candle", "b-day-candle"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeGiftName(tt.in), tt.in)
	}
}

func TestRarityLabel(t *testing.T) {
	assert.Equal(t, "1.5%", ModelVariant{Name: "Red", RarityPermille: 15}.RarityLabel())
	assert.Equal(t, "0.0%", PatternVariant{Name: "Dots"}.RarityLabel())
	assert.Equal(t, "100.0%", PatternVariant{Name: "All", RarityPermille: 1000}.RarityLabel())
}

func TestFindBackdrop(t *testing.T) {
	onyx := &Backdrop{Name: "Onyx Black", Hex: BackdropHex{EdgeColor: "#000000", CenterColor: "#333333"}}
	jade := &Backdrop{Name: "Jade", Hex: BackdropHex{EdgeColor: "#00a86b", CenterColor: "#7fffd4"}}
	list := []*Backdrop{onyx, nil, jade}

	assert.Same(t, jade, FindBackdrop(list, "Jade"))
	assert.Nil(t, FindBackdrop(list, "Ruby"))
	assert.Nil(t, FindBackdrop(nil, "Jade"))
}

func TestHasVariant(t *testing.T) {
	models := []ModelVariant{{Name: "Frog", RarityPermille: 20}}
	patterns := []PatternVariant{{Name: "Stars", RarityPermille: 5}}

	assert.True(t, HasModel(models, "Frog"))
	assert.False(t, HasModel(models, "Toad"))
	assert.True(t, HasPattern(patterns, "Stars"))
	assert.False(t, HasPattern(nil, "Stars"))
}
