// Package link extracts gift names from t.me/nft deep links.
package link

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// nftLink matches t.me/nft/<slug>-<serial>. The slug is taken lazily so the
// last hyphen-digits run is the serial.
var nftLink = regexp.MustCompile(`t\.me/nft/([A-Za-z0-9]+(?:-[A-Za-z0-9]+)*?)-(\d+)`)

// Parse returns the title-cased gift name encoded in a link such as
// "t.me/nft/Plush-Pepe-12345" ("Plush Pepe"). The serial is discarded.
// Input that does not match returns types.ErrParseFailure.
func Parse(text string) (types.Gift, error) {
	m := nftLink.FindStringSubmatch(text)
	if m == nil {
		return "", types.ErrParseFailure
	}
	// Casers are stateful, so each call gets its own.
	title := cases.Title(language.Und, cases.NoLower)
	words := strings.Fields(strings.ReplaceAll(m[1], "-", " "))
	for i, w := range words {
		// A word starting with a digit keeps its case.
		if r, _ := utf8.DecodeRuneInString(w); unicode.IsLetter(r) {
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, " "), nil
}
