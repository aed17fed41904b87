package template

import "fmt"

// node is an element of the parsed template tree.
type node interface {
	isNode()
}

// textNode is a run of literal markup.
type textNode struct {
	text string
}

// varNode is a {{path}} placeholder.
// raw keeps the original lexeme for verbatim output when path fails to
// resolve.
type varNode struct {
	path string
	raw  string
}

// ifNode is a {{#if path}}...{{else}}...{{/if}} block. els is nil when the
// block has no else arm.
type ifNode struct {
	path string
	then []node
	els  []node
}

// eachNode is a {{#each path}}...{{/each}} block.
type eachNode struct {
	path string
	body []node
}

func (*textNode) isNode() {}
func (*varNode) isNode()  {}
func (*ifNode) isNode()   {}
func (*eachNode) isNode() {}

// parser consumes a token stream and builds the node tree.
type parser struct {
	toks []token
	pos  int
}

// parseNodes parses tokens until the stream ends or one of the stop kinds
// appears. A matching stop token is consumed and returned as term; exhaustion
// returns tokenEOF. Block terminators outside their block are syntax errors.
func (p *parser) parseNodes(stop ...tokenKind) (nodes []node, term tokenKind, err error) {
	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		for _, s := range stop {
			if tok.kind == s {
				p.pos++
				return nodes, tok.kind, nil
			}
		}

		p.pos++
		switch tok.kind {
		case tokenText:
			nodes = append(nodes, &textNode{text: tok.text})
		case tokenVar:
			nodes = append(nodes, &varNode{path: tok.arg, raw: tok.text})
		case tokenIf:
			n, err := p.parseIf(tok)
			if err != nil {
				return nil, tokenEOF, err
			}
			nodes = append(nodes, n)
		case tokenEach:
			n, err := p.parseEach(tok)
			if err != nil {
				return nil, tokenEOF, err
			}
			nodes = append(nodes, n)
		case tokenElse:
			return nil, tokenEOF, fmt.Errorf("%w: unexpected {{else}}", ErrSyntax)
		case tokenEndIf:
			return nil, tokenEOF, fmt.Errorf("%w: {{/if}} without matching {{#if}}", ErrSyntax)
		case tokenEndEach:
			return nil, tokenEOF, fmt.Errorf("%w: {{/each}} without matching {{#each}}", ErrSyntax)
		}
	}
	return nodes, tokenEOF, nil
}

// parseIf parses the body of a conditional block after its opening token.
func (p *parser) parseIf(open token) (node, error) {
	then, term, err := p.parseNodes(tokenElse, tokenEndIf)
	if err != nil {
		return nil, err
	}

	n := &ifNode{path: open.arg, then: then}
	if term == tokenElse {
		n.els, term, err = p.parseNodes(tokenEndIf)
		if err != nil {
			return nil, err
		}
	}
	if term != tokenEndIf {
		return nil, fmt.Errorf("%w: unterminated {{#if %s}} block", ErrSyntax, open.arg)
	}
	return n, nil
}

// parseEach parses the body of an iteration block after its opening token.
func (p *parser) parseEach(open token) (node, error) {
	body, term, err := p.parseNodes(tokenEndEach)
	if err != nil {
		return nil, err
	}
	if term != tokenEndEach {
		return nil, fmt.Errorf("%w: unterminated {{#each %s}} block", ErrSyntax, open.arg)
	}
	return &eachNode{path: open.arg, body: body}, nil
}
