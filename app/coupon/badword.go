package coupon

import "strings"

// badWords kept rot13-encoded, candidates are encoded the same way before lookup
var badWords = func() map[string]struct{} {
	words := strings.Fields(`
		SHPX PHAG JNAX JNAT CVFF PBPX FUVG GJNG GVGF SNEG URYY ZHSS QVPX XABO
		NEFR FUNT GBFF FYHG GHEQ FYNT PENC CBBC OHGG SRPX OBBO WVFZ WVMM CUNG`)
	res := make(map[string]struct{}, len(words))
	for _, w := range words {
		res[w] = struct{}{}
	}
	return res
}()

// isBadWord reports if candidate spells one of the forbidden words, case-insensitive
func isBadWord(candidate string) bool {
	_, found := badWords[rot13(strings.ToUpper(candidate))]
	return found
}

func rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		}
		return r
	}, s)
}
