package remote

import (
	"fmt"
	"net/url"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// JSON endpoints of the catalog API.
const (
	GiftsPath     = "/gifts"
	BackdropsPath = "/backdrops"
)

// Image sizes requested by the presentation layer.
const (
	ThumbnailSize = 128
	PreviewSize   = 256
	SymbolSize    = 64
)

// ModelsPath returns the endpoint listing a gift's model variants, rarest
// first.
func ModelsPath(gift types.Gift) string {
	return "/models/" + types.NormalizeGiftName(gift) + "?sorted"
}

// PatternsPath returns the endpoint listing a gift's pattern variants.
func PatternsPath(gift types.Gift) string {
	return "/patterns/" + types.NormalizeGiftName(gift) + "?sorted"
}

// ModelImagePath returns the image endpoint for a model variant.
func ModelImagePath(gift types.Gift, model string, size int) string {
	return fmt.Sprintf("/model/%s/%s.png?size=%d",
		url.PathEscape(types.NormalizeGiftName(gift)), url.PathEscape(model), size)
}

// PatternImagePath returns the image endpoint for a pattern symbol.
func PatternImagePath(gift types.Gift, pattern string, size int) string {
	return fmt.Sprintf("/pattern/%s/%s.png?size=%d",
		url.PathEscape(types.NormalizeGiftName(gift)), url.PathEscape(pattern), size)
}
