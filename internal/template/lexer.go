package template

import "strings"

// Placeholder delimiters.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// tokenKind identifies the lexical class of a token.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenText
	tokenVar
	tokenIf
	tokenElse
	tokenEndIf
	tokenEach
	tokenEndEach
)

// token is a lexed unit of template markup.
// text holds literal content for tokenText and the raw {{...}} lexeme for
// every other kind, so unresolved placeholders can be echoed exactly as
// written. arg holds the path argument of var, if, and each tokens.
type token struct {
	kind tokenKind
	text string
	arg  string
}

// lex splits markup into literal text and placeholder tokens.
// An opening {{ with no closing }} is not a token: the remainder of the
// input is literal text.
func lex(markup string) []token {
	var toks []token
	for len(markup) > 0 {
		open := strings.Index(markup, openDelim)
		if open == -1 {
			toks = append(toks, token{kind: tokenText, text: markup})
			break
		}
		if open > 0 {
			toks = append(toks, token{kind: tokenText, text: markup[:open]})
		}
		rest := markup[open:]
		rel := strings.Index(rest[len(openDelim):], closeDelim)
		if rel == -1 {
			toks = append(toks, token{kind: tokenText, text: rest})
			break
		}
		end := len(openDelim) + rel + len(closeDelim)
		toks = append(toks, classify(rest[:end]))
		markup = rest[end:]
	}
	return toks
}

// classify maps a raw {{...}} lexeme to its token.
// Anything that is not a recognized block marker is a variable reference;
// malformed markers (missing argument, extra words) degrade the same way
// and surface verbatim in the output when they fail to resolve.
func classify(raw string) token {
	inner := strings.TrimSpace(raw[len(openDelim) : len(raw)-len(closeDelim)])

	switch inner {
	case "else":
		return token{kind: tokenElse, text: raw}
	case "/if":
		return token{kind: tokenEndIf, text: raw}
	case "/each":
		return token{kind: tokenEndEach, text: raw}
	}

	if fields := strings.Fields(inner); len(fields) == 2 {
		switch fields[0] {
		case "#if":
			return token{kind: tokenIf, text: raw, arg: fields[1]}
		case "#each":
			return token{kind: tokenEach, text: raw, arg: fields[1]}
		}
	}

	return token{kind: tokenVar, text: raw, arg: inner}
}
