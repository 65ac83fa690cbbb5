// internal/content/slug.go
//
// Slug helper for news URLs.
//
// Rules
// -----
// 1. Transliterate the Spanish letters the editors actually type (á é í ó ú
//    ü ñ, plus uppercase) to their ASCII base.
// 2. Lower-case everything.
// 3. Any remaining run of non-[a-z0-9] becomes one “-”.
// 4. Trim leading/trailing “-”; cap at 100 bytes.
// 5. An empty result falls back to "nota".

package content

import "strings"

var spanishASCII = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// MakeSlug converts a news title into a URL-safe lower-kebab slug.
func MakeSlug(title string) string {
	title = spanishASCII.Replace(title)

	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "nota"
	}
	if len(slug) > 100 {
		slug = strings.TrimRight(slug[:100], "-")
	}
	return slug
}
