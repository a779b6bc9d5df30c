package extract

import "strings"

// PDF text extraction flattens the lesson tables into plain lines, so no
// delimiter reliably separates the Chinese prompt from the English
// translation. Script classification recovers the boundary: each rune is
// judged by Unicode range, and lines or tokens are classified by which
// scripts they contain. Pure predicates, testable with literal input.

// isHan reports whether r is a CJK unified ideograph.
func isHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// isLatinLetter reports whether r is an ASCII letter.
func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isPhoneticMark reports whether r belongs to the IPA ranges used by K.K.
// phonetic annotations: the IPA Extensions block, spacing modifier
// letters (stress and length marks such as ˈ ˌ ː), and combining
// diacritics.
func isPhoneticMark(r rune) bool {
	switch {
	case r >= 0x0250 && r <= 0x02AF: // IPA Extensions
		return true
	case r >= 0x02B0 && r <= 0x02FF: // Spacing Modifier Letters
		return true
	case r >= 0x0300 && r <= 0x036F: // Combining Diacritical Marks
		return true
	}
	return false
}

// phoneticDelimiters are the characters the source material wraps
// annotations in: /ˈæp.əl/ or [ˈæp.əl].
const phoneticDelimiters = "/[]"

// ContainsHan reports whether s contains at least one CJK ideograph.
func ContainsHan(s string) bool {
	return strings.ContainsFunc(s, isHan)
}

// ContainsLatin reports whether s contains at least one ASCII letter.
func ContainsLatin(s string) bool {
	return strings.ContainsFunc(s, isLatinLetter)
}

// ContainsPhonetic reports whether s looks like (part of) a phonetic
// annotation: it carries an IPA mark or one of the delimiter characters.
func ContainsPhonetic(s string) bool {
	if strings.ContainsAny(s, phoneticDelimiters) {
		return true
	}
	return strings.ContainsFunc(s, isPhoneticMark)
}

// digitsOnly reports whether s consists solely of ASCII digits.
// Such lines are page numbers, not vocabulary.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
