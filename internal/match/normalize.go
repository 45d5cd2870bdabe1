package match

import (
	"slices"
	"strings"
	"unicode"
)

// Side is the body side a bone name refers to.
type Side int

const (
	Center Side = iota
	Left
	Right
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "center"
	}
}

// controlTokens mark rig mechanics rather than anatomy.
var controlTokens = []string{"fk", "ik", "mch", "def", "org", "ctrl"}

// BoneName is a bone name reduced for comparison.
type BoneName struct {
	Raw    string
	Key    string
	Side   Side
	Tokens []string
}

// NormalizeBone reduces name to its anatomical key and side.
func NormalizeBone(name string) BoneName {
	bn := BoneName{Raw: name}

	base := name
	if i := strings.LastIndexByte(base, ':'); i >= 0 {
		base = base[i+1:]
	}

	for _, tok := range tokenize(base) {
		tok = strings.ToLower(tok)

		switch {
		case tok == "l" || tok == "left":
			bn.Side = Left
		case tok == "r" || tok == "right":
			bn.Side = Right
		case slices.Contains(controlTokens, tok):
		default:
			bn.Tokens = append(bn.Tokens, tok)
		}
	}

	bn.Key = strings.Join(bn.Tokens, "")

	return bn
}

// tokenize splits on separators and CamelCase boundaries. A run of capitals
// stays one token ("FK"), and digits start a token after letters.
func tokenize(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && len(current) > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	switch {
	case unicode.IsDigit(r):
		return !unicode.IsDigit(prev)
	case unicode.IsDigit(prev):
		return true
	case unicode.IsUpper(r) && unicode.IsLower(prev):
		return true
	case unicode.IsUpper(r) && unicode.IsUpper(prev):
		// End of an acronym: "FKArm" splits before "Arm".
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	}

	return false
}
