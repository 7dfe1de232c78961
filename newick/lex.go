package newick

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is returned for structurally invalid Newick input: an
// unclosed bracketed comment, an unmatched closing parenthesis, and the
// like.
var ErrMalformed = errors.New("newick: malformed input")

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenLParen TokenType = iota
	TokenRParen
	TokenComma
	TokenColon
	TokenSemicolon
	TokenComment
	TokenName
	TokenNumber
)

func (t TokenType) String() string {
	switch t {
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "COLON"
	case TokenSemicolon:
		return "SEMICOLON"
	case TokenComment:
		return "COMMENT"
	case TokenName:
		return "NAME"
	case TokenNumber:
		return "NUMBER"
	}
	panic(fmt.Sprintf("BUG: unknown token type %d", int(t)))
}

// A Token is one lexical unit of a Newick string.
type Token struct {
	Type  TokenType
	Value string
}

func (t Token) String() string {
	return fmt.Sprintf("(%s, %s)", t.Type, t.Value)
}

// identifierEnd holds the characters that terminate a bare NAME or NUMBER
// run.
const identifierEnd = "():;,["

// A Tokenizer scans a Newick string into tokens, one call to Next at a
// time. A bare run of characters is classified NUMBER exactly when the
// previous non-comment token was a colon; no numeric validation happens
// here, so any text after a colon comes back as a NUMBER verbatim.
type Tokenizer struct {
	input        string
	pos          int
	expectNumber bool
	openParens   int
}

// NewTokenizer returns a Tokenizer over the given string.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Next returns the next token. It returns io.EOF at the end of the input
// and ErrMalformed for an unclosed comment or an unmatched closing
// parenthesis. The tokenizer does not require the final parenthesis balance
// to be zero; that is the caller's concern.
func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.input) {
		return Token{}, io.EOF
	}

	c := t.input[t.pos]
	switch c {
	case '(':
		t.openParens++
		t.pos++
		return Token{TokenLParen, "("}, nil
	case ')':
		t.openParens--
		if t.openParens < 0 {
			return Token{}, fmt.Errorf("%w: unmatched closing parenthesis at offset %d",
				ErrMalformed, t.pos)
		}
		t.pos++
		return Token{TokenRParen, ")"}, nil
	case ',':
		t.pos++
		return Token{TokenComma, ","}, nil
	case ':':
		t.expectNumber = true
		t.pos++
		return Token{TokenColon, ":"}, nil
	case ';':
		t.pos++
		return Token{TokenSemicolon, ";"}, nil
	case '[':
		start := t.pos
		end, err := scanComment(t.input, t.pos)
		if err != nil {
			return Token{}, err
		}
		t.pos = end
		return Token{TokenComment, t.input[start:end]}, nil
	}

	start := t.pos
	for t.pos < len(t.input) && !strings.ContainsRune(identifierEnd, rune(t.input[t.pos])) {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.expectNumber {
		t.expectNumber = false
		return Token{TokenNumber, value}, nil
	}
	return Token{TokenName, value}, nil
}

// Tokenize scans the whole input and returns all tokens.
func Tokenize(input string) ([]Token, error) {
	tk := NewTokenizer(input)
	var tokens []Token
	for {
		token, err := tk.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
}

// scanComment consumes a bracketed comment starting at the '[' at offset
// start, tracking nesting depth so inner brackets do not close it early. It
// returns the offset just past the closing bracket.
func scanComment(input string, start int) (int, error) {
	i := start + 1
	depth := 1
	for i < len(input) && depth > 0 {
		switch input[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
		i++
	}
	if depth > 0 {
		return 0, fmt.Errorf("%w: unclosed comment at offset %d", ErrMalformed, start)
	}
	return i, nil
}
