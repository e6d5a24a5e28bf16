// Package coupon generates and validates human-typable codes like QLMM-J46Q-46RT.
// Each code is a number of dash-separated parts, the last symbol of every part is a check
// symbol computed over the rest of the part and its position in the code. Symbols easy to
// mistype are excluded from the alphabet and fixed up on input, parts spelling rude words
// are never issued. Check symbols detect typos only, codes are not secrets.
package coupon

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // digest spreads seed over symbols, compatibility with issued codes
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// Errors
var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrEntropyExhausted = errors.New("entropy exhausted")
	ErrBadParams        = errors.New("bad params")
	ErrBadLength        = errors.New("bad code length")
	ErrBadChecksum      = errors.New("bad checksum")
)

const (
	defaultParts      = 3
	defaultPartLength = 4
	seedSize          = 8
	separator         = "-"
)

// Params to customize code layout
type Params struct {
	Parts      int       // number of dash-separated parts
	PartLength int       // symbols per part, including check symbol
	Random     io.Reader // entropy source for unseeded generation
}

// Coder makes and checks codes. It has no mutable state and is safe for concurrent use
// with the default random source, a custom Params.Random has to allow concurrent reads itself.
type Coder struct {
	params Params
}

// New makes Coder with defaults for zero params
func New(params Params) (*Coder, error) {
	if params.Parts == 0 {
		params.Parts = defaultParts
	}
	if params.PartLength == 0 {
		params.PartLength = defaultPartLength
	}
	if params.Random == nil {
		params.Random = rand.Reader
	}
	if params.Parts < 1 {
		return nil, fmt.Errorf("%w: parts %d, should be at least 1", ErrBadParams, params.Parts)
	}
	if params.PartLength < 2 {
		return nil, fmt.Errorf("%w: part length %d, should be at least 2", ErrBadParams, params.PartLength)
	}
	if params.Parts > math.MaxInt/params.PartLength {
		return nil, fmt.Errorf("%w: %d parts of %d symbols is too long", ErrBadParams, params.Parts, params.PartLength)
	}
	log.Printf("[INFO] created coupon coder with %d parts of %d symbols", params.Parts, params.PartLength)
	return &Coder{params: params}, nil
}

// Params returns effective params
func (c *Coder) Params() Params {
	return c.params
}

// Generate makes a new code from random seed
func (c *Coder) Generate() (string, error) {
	seed := make([]byte, seedSize)
	if _, err := io.ReadFull(c.params.Random, seed); err != nil {
		log.Printf("[WARN] can't read entropy, %v", err)
		return "", fmt.Errorf("read entropy: %w", err)
	}
	return c.GenerateFromSeed(seed)
}

// GenerateFromSeed makes code from the given seed. The same seed always gives the same code.
func (c *Coder) GenerateFromSeed(seed []byte) (string, error) {
	digest := sha1.Sum(seed) //nolint:gosec // not a security boundary
	plaintext := make([]byte, len(digest))
	for i, b := range digest {
		plaintext[i] = byteToSymbol(b)
	}

	width := c.params.PartLength - 1
	parts := make([]string, 0, min(c.params.Parts, len(plaintext)))
	for tries := 0; len(parts) < c.params.Parts; tries++ {
		start := tries * width
		if start+width > len(plaintext) {
			return "", fmt.Errorf("%w: %d parts of %d symbols need more than %d plaintext symbols",
				ErrEntropyExhausted, c.params.Parts, c.params.PartLength, len(plaintext))
		}
		data := plaintext[start : start+width]
		check, err := checkDigit(len(parts)+1, data)
		if err != nil {
			return "", fmt.Errorf("make check symbol: %w", err)
		}
		part := string(data) + string(check)
		if isBadWord(part) {
			log.Printf("[DEBUG] rejected bad word candidate for part %d", len(parts)+1)
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, separator), nil
}

// GenerateBatch makes n random codes
func (c *Coder) GenerateBatch(n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: batch size %d", ErrBadParams, n)
	}
	res := make([]string, 0, n)
	for i := 0; i < n; i++ {
		code, err := c.Generate()
		if err != nil {
			return nil, err
		}
		res = append(res, code)
	}
	return res, nil
}

// Validate checks code typed by a human. Case, separators and ambiguous letters are ignored.
func (c *Coder) Validate(code string) bool {
	_, err := c.Parse(code)
	return err == nil
}

// Parse checks code and returns it in canonical form
func (c *Coder) Parse(code string) (string, error) {
	clean := Clean(code)
	if len(clean) != c.params.Parts*c.params.PartLength {
		return "", fmt.Errorf("%w: %d symbols, expected %d", ErrBadLength, len(clean), c.params.Parts*c.params.PartLength)
	}

	parts := make([]string, 0, min(c.params.Parts, len(clean)))
	for i := 0; i < c.params.Parts; i++ {
		part := clean[i*c.params.PartLength : (i+1)*c.params.PartLength]
		last := len(part) - 1
		check, err := checkDigit(i+1, []byte(part[:last]))
		if err != nil || check != part[last] {
			return "", fmt.Errorf("%w: part %d", ErrBadChecksum, i+1)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, separator), nil
}

// Normalize cleans code and groups symbols by part length for display.
// Nothing is checked, incomplete codes keep a short last group.
func (c *Coder) Normalize(code string) string {
	clean := Clean(code)
	if clean == "" {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < len(clean); i += c.params.PartLength {
		if i > 0 {
			sb.WriteString(separator)
		}
		sb.WriteString(clean[i:min(i+c.params.PartLength, len(clean))])
	}
	return sb.String()
}

// Clean uppercases code, replaces ambiguous letters with digits and drops everything
// except 0-9 and A-Z, separators included.
func Clean(code string) string {
	upper := strings.ToUpper(code)
	res := make([]byte, 0, len(upper))
	for i := 0; i < len(upper); i++ {
		ch := normalizeAmbiguous(upper[i])
		if (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'Z') {
			res = append(res, ch)
		}
	}
	return string(res)
}
