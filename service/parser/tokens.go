package parser

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1 to stay clear of parsly.EOF.
const (
	whitespaceCode = 0
	identifierCode = iota
	numberCode
	matrixCode
	plusCode
	minusCode
	starCode
	openParenCode
	closeParenCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	identifierToken = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	numberToken     = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	matrixToken     = parsly.NewToken(matrixCode, "Matrix", &matrixMatcher{})
	plusToken       = parsly.NewToken(plusCode, "+", matcher.NewByte('+'))
	minusToken      = parsly.NewToken(minusCode, "-", matcher.NewByte('-'))
	starToken       = parsly.NewToken(starCode, "*", matcher.NewByte('*'))
	openParenToken  = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	closeParenToken = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
)

// identifierMatcher matches a letter or underscore followed by letters, digits
// or underscores.
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || !(isLetter(input[pos]) || input[pos] == '_') {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if !(isLetter(input[i]) || isDigit(input[i]) || input[i] == '_') {
			break
		}
		matched++
	}
	return matched
}

// numberMatcher matches an unsigned decimal number with an optional fraction
// and exponent.
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	i := pos
	digits := 0
	for ; i < size && isDigit(input[i]); i++ {
		digits++
	}
	if i < size && input[i] == '.' {
		i++
		for ; i < size && isDigit(input[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < size && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < size && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < size && isDigit(input[j]) {
			for ; j < size && isDigit(input[j]); j++ {
			}
			i = j
		}
	}
	return i - pos
}

// matrixMatcher matches a bracketed literal up to its balancing bracket.
type matrixMatcher struct{}

func (m *matrixMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || input[pos] != '[' {
		return 0
	}
	depth := 0
	for i := pos; i < size; i++ {
		switch input[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i - pos + 1
			}
		}
	}
	return 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
