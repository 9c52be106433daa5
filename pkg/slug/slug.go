package slug

import "strings"

// Make converts free text into a URL and filename safe slug. The transform is
// stable: the same input always yields the same output, and slugs survive a
// second pass unchanged, which lets callers re-derive a photo filename from a
// room name at any point.
//
// Rules: lowercase, strip everything outside [a-z0-9], whitespace, underscore
// and hyphen, collapse runs of whitespace/underscore/hyphen into a single
// hyphen, then trim hyphens from both ends. Symbol-only input yields "".
func Make(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))

	pendingHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '_', r == '-':
			pendingHyphen = true
		default:
			// Punctuation and other symbols are dropped without acting as
			// separators, matching "The Vault!" -> "the-vault".
		}
	}

	return b.String()
}
