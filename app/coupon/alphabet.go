package coupon

// alphabet has no I, O, S and Z, they are too easy to confuse with 1, 0, 5 and 2.
// The size must stay a power of two, byteToSymbol masks bytes into it.
const alphabet = "0123456789ABCDEFGHJKLMNPQRTUVWXY"

// indexes maps a symbol to its position in alphabet, -1 for non-members
var indexes = func() (res [256]int) {
	for i := range res {
		res[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		res[alphabet[i]] = i
	}
	return res
}()

// symbolIndex returns position of the symbol in alphabet
func symbolIndex(symbol byte) (int, error) {
	idx := indexes[symbol]
	if idx < 0 {
		return 0, ErrInvalidSymbol
	}
	return idx, nil
}

// indexSymbol expects 0 <= index < len(alphabet)
func indexSymbol(index int) byte {
	return alphabet[index]
}

func byteToSymbol(b byte) byte {
	return alphabet[int(b)&(len(alphabet)-1)]
}

// normalizeAmbiguous rewrites letters excluded from alphabet to the digits they look like
func normalizeAmbiguous(c byte) byte {
	switch c {
	case 'O':
		return '0'
	case 'I':
		return '1'
	case 'Z':
		return '2'
	case 'S':
		return '5'
	}
	return c
}
