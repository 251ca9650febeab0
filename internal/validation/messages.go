package validation

import (
	"github.com/leonelquinteros/gotext"
)

// ConfigureMessages loads the diagnostic catalog for lang from dir using the
// given gettext domain. Kinds without a translation keep their English text.
func ConfigureMessages(dir, lang, domain string) {
	gotext.Configure(dir, lang, domain)
}

// Message returns the fixed, human-readable diagnostic for k. The English
// text doubles as the catalog message ID.
func (k Kind) Message() string {
	switch k {
	case KindInvalidFilename:
		return gotext.Get("INVALID FILENAME: EXPECTED .ber EXTENSION")
	case KindEmptyMap:
		return gotext.Get("ERROR, INVALID MAP: EMPTY MAP")
	case KindInconsistentLineLengths:
		return gotext.Get("ERROR, INVALID MAP: INCONSISTENT LINE LENGTHS")
	case KindMissingBorderWall:
		return gotext.Get("ERROR, INVALID MAP: MAP NOT SURROUNDED BY WALLS")
	case KindInvalidCharacter:
		return gotext.Get("INVALID CHARACTER IN MAP")
	case KindInvalidPlayerCount:
		return gotext.Get("INVALID NUMBER PLAYER")
	case KindNoExit:
		return gotext.Get("NO EXIT")
	case KindNoCollectable:
		return gotext.Get("NO COLLECTABLE")
	case KindUnreachableExit:
		return gotext.Get("NO VALID PATH TO EXIT")
	case KindUnreachableCollectable:
		return gotext.Get("NO VALID PATH TO ALL COLLECTABLES")
	}
	return ""
}
