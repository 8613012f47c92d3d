package cloud

import (
	"strings"
	"unicode"
)

// Case is the letter case a name has to use.
type Case int

const (
	CaseMixed Case = iota
	CaseLower
	CaseUpper
)

// NamingConstraints describes which names a provider accepts for a resource.
type NamingConstraints struct {
	MinLength    int
	MaxLength    int
	AllowDigits  bool
	AllowLetters bool
	LetterCase   Case
	// SpecialChars lists the non alphanumeric characters a name may contain.
	SpecialChars []rune
	// DigitFirst allows names to start with a digit.
	DigitFirst bool
}

// AlphaOnly returns constraints allowing letters only.
func AlphaOnly(minLength, maxLength int) NamingConstraints {
	return NamingConstraints{
		MinLength:    minLength,
		MaxLength:    maxLength,
		AllowLetters: true,
	}
}

// Alphanumeric returns constraints allowing letters and digits.
func Alphanumeric(minLength, maxLength int) NamingConstraints {
	return NamingConstraints{
		MinLength:    minLength,
		MaxLength:    maxLength,
		AllowLetters: true,
		AllowDigits:  true,
		DigitFirst:   true,
	}
}

// ConstrainedBy returns a copy of c which additionally allows chars.
func (c NamingConstraints) ConstrainedBy(chars ...rune) NamingConstraints {
	special := make([]rune, 0, len(c.SpecialChars)+len(chars))
	special = append(special, c.SpecialChars...)
	c.SpecialChars = append(special, chars...)
	return c
}

func (c NamingConstraints) LowerCase() NamingConstraints {
	c.LetterCase = CaseLower
	return c
}

func (c NamingConstraints) UpperCase() NamingConstraints {
	c.LetterCase = CaseUpper
	return c
}

func (c NamingConstraints) allowed(r rune) bool {
	switch {
	case r < unicode.MaxASCII && unicode.IsLetter(r):
		if !c.AllowLetters {
			return false
		}
		switch c.LetterCase {
		case CaseLower:
			return unicode.IsLower(r)
		case CaseUpper:
			return unicode.IsUpper(r)
		}
		return true
	case r < unicode.MaxASCII && unicode.IsDigit(r):
		return c.AllowDigits
	}
	for _, s := range c.SpecialChars {
		if s == r {
			return true
		}
	}
	return false
}

// IsValidName reports whether name satisfies the constraints.
func (c NamingConstraints) IsValidName(name string) bool {
	n := len([]rune(name))
	if n < c.MinLength || (c.MaxLength > 0 && n > c.MaxLength) {
		return false
	}
	for i, r := range name {
		if !c.allowed(r) {
			return false
		}
		if i == 0 && unicode.IsDigit(r) && !c.DigitFirst {
			return false
		}
	}
	if n > 0 {
		runes := []rune(name)
		if c.special(runes[0]) || c.special(runes[n-1]) {
			return false
		}
	}
	return true
}

// special reports whether r is one of the allowed non alphanumeric
// characters. Names never start or end with one.
func (c NamingConstraints) special(r rune) bool {
	for _, s := range c.SpecialChars {
		if s == r {
			return true
		}
	}
	return false
}

// ConvertToValidName turns name into a name satisfying the constraints by
// adjusting the letter case, replacing spaces and dropping every other
// disallowed character. It returns an empty string when nothing usable is
// left.
func (c NamingConstraints) ConvertToValidName(name string) string {
	switch c.LetterCase {
	case CaseLower:
		name = strings.ToLower(name)
	case CaseUpper:
		name = strings.ToUpper(name)
	}

	var b strings.Builder
	for _, r := range name {
		if r == ' ' && !c.allowed(r) {
			if c.allowed('-') {
				r = '-'
			} else if c.allowed('_') {
				r = '_'
			} else {
				continue
			}
		}
		if !c.allowed(r) {
			continue
		}
		if b.Len() == 0 && (c.special(r) || unicode.IsDigit(r) && !c.DigitFirst) {
			continue
		}
		b.WriteRune(r)
	}

	out := []rune(b.String())
	if c.MaxLength > 0 && len(out) > c.MaxLength {
		out = out[:c.MaxLength]
	}
	for len(out) > 0 && c.special(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < c.MinLength {
		return ""
	}
	return string(out)
}
