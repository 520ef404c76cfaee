package iso8211

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatKind identifies one of the ISO/IEC 8211 subfield data types a DDR
// format-controls string can describe.
type FormatKind int

const (
	// FormatASCII is character data, either fixed-width (A(n)) or delimited
	// by a unit/field terminator when the width is omitted (A).
	FormatASCII FormatKind = iota
	// FormatInteger is a fixed-width ASCII integer (I(n)).
	FormatInteger
	// FormatReal is a fixed-width ASCII real number (R(n)).
	FormatReal
	// FormatBitfield is a fixed-width opaque bit field (B(n), n in bits).
	FormatBitfield
	// FormatBinary is a little-endian binary integer (b{t}{w}).
	FormatBinary
)

// FormatSpec is one parsed element of a format-controls string.
type FormatSpec struct {
	Kind     FormatKind
	Width    int  // byte width; 0 means delimited (only valid for FormatASCII)
	BitWidth int  // bit width, for FormatBitfield only
	Signed   bool // for FormatBinary: t=2 is signed, t=1 is unsigned
}

// ParseFormatControls parses a DDR format-controls string such as
// "(A(2),I(5),b12,B(16))" into its flattened list of per-subfield specs.
// Repeat-count prefixes and parenthesized groups are expanded in place, so
// "3I(4)" and "(A(2),I(3))" both yield one FormatSpec per subfield.
func ParseFormatControls(s string) ([]FormatSpec, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "*") // lexical-level marker, not a format token
	p := &formatParser{s: []rune(s)}
	specs, err := p.parseGroup(true)
	if err != nil {
		return nil, fmt.Errorf("format controls %q: %w", s, err)
	}
	if p.i != len(p.s) {
		return nil, fmt.Errorf("format controls %q: unexpected trailing characters at %d", s, p.i)
	}
	return specs, nil
}

type formatParser struct {
	s []rune
	i int
}

func (p *formatParser) peek() rune {
	if p.i >= len(p.s) {
		return 0
	}
	return p.s[p.i]
}

func (p *formatParser) next() rune {
	r := p.peek()
	p.i++
	return r
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// parseGroup parses a comma-separated list of items, optionally wrapped in
// parentheses. topLevel groups must be parenthesized per the DDR grammar.
func (p *formatParser) parseGroup(topLevel bool) ([]FormatSpec, error) {
	hasParen := false
	if p.peek() == '(' {
		p.next()
		hasParen = true
	} else if topLevel {
		return nil, fmt.Errorf("expected '(' at start of format controls")
	}

	var out []FormatSpec
	for {
		if p.peek() == 0 || p.peek() == ')' {
			break
		}
		items, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if p.peek() == ',' {
			p.next()
			continue
		}
		break
	}

	if hasParen {
		if p.peek() != ')' {
			return nil, fmt.Errorf("unterminated group at %d", p.i)
		}
		p.next()
	}
	return out, nil
}

// parseItem parses an optional repeat count followed by either a
// parenthesized subgroup or a single format specifier.
func (p *formatParser) parseItem() ([]FormatSpec, error) {
	count := 1
	if isDigit(p.peek()) {
		start := p.i
		for isDigit(p.peek()) {
			p.next()
		}
		n, err := strconv.Atoi(string(p.s[start:p.i]))
		if err != nil {
			return nil, fmt.Errorf("invalid repeat count at %d", start)
		}
		count = n
	}

	if p.peek() == '(' {
		sub, err := p.parseGroup(false)
		if err != nil {
			return nil, err
		}
		out := make([]FormatSpec, 0, len(sub)*count)
		for k := 0; k < count; k++ {
			out = append(out, sub...)
		}
		return out, nil
	}

	spec, err := p.parseSpec()
	if err != nil {
		return nil, err
	}
	out := make([]FormatSpec, count)
	for k := range out {
		out[k] = spec
	}
	return out, nil
}

func (p *formatParser) parseParenInt() (int, error) {
	if p.peek() != '(' {
		return 0, fmt.Errorf("expected '(' at %d", p.i)
	}
	p.next()
	start := p.i
	for isDigit(p.peek()) {
		p.next()
	}
	if start == p.i {
		return 0, fmt.Errorf("expected digits at %d", start)
	}
	n, err := strconv.Atoi(string(p.s[start:p.i]))
	if err != nil {
		return 0, err
	}
	if p.peek() != ')' {
		return 0, fmt.Errorf("unterminated '(' at %d", start)
	}
	p.next()
	return n, nil
}

func (p *formatParser) parseSpec() (FormatSpec, error) {
	letter := p.next()
	switch letter {
	case 'A':
		if p.peek() == '(' {
			n, err := p.parseParenInt()
			if err != nil {
				return FormatSpec{}, err
			}
			return FormatSpec{Kind: FormatASCII, Width: n}, nil
		}
		return FormatSpec{Kind: FormatASCII, Width: 0}, nil
	case 'I':
		n, err := p.parseParenInt()
		if err != nil {
			return FormatSpec{}, err
		}
		return FormatSpec{Kind: FormatInteger, Width: n}, nil
	case 'R':
		n, err := p.parseParenInt()
		if err != nil {
			return FormatSpec{}, err
		}
		return FormatSpec{Kind: FormatReal, Width: n}, nil
	case 'B':
		n, err := p.parseParenInt()
		if err != nil {
			return FormatSpec{}, err
		}
		return FormatSpec{Kind: FormatBitfield, BitWidth: n, Width: (n + 7) / 8}, nil
	case 'b':
		typeDigit := p.next()
		widthDigit := p.next()
		if !isDigit(typeDigit) || !isDigit(widthDigit) {
			return FormatSpec{}, fmt.Errorf("invalid binary format spec at %d", p.i)
		}
		return FormatSpec{
			Kind:   FormatBinary,
			Width:  int(widthDigit - '0'),
			Signed: typeDigit == '2',
		}, nil
	default:
		return FormatSpec{}, fmt.Errorf("unknown format specifier %q at %d", string(letter), p.i-1)
	}
}
