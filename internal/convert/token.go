package convert

import (
	"luamend/internal/cst"
	"luamend/internal/nodes"
	"luamend/internal/token"
)

// token converts a front-end token into a referenced node token,
// carrying its trivia over. Returns nil when token data is not held.
func (c *converter) token(t token.Token) (*nodes.Token, error) {
	if !c.opts.HoldTokenData {
		return nil, nil
	}
	converted := nodes.TokenAt(t.Span.Start, t.Span.End, t.Line)
	for _, trivia := range t.Leading {
		kind, err := c.triviaKind(trivia)
		if err != nil {
			return nil, err
		}
		converted.PushLeadingTrivia(nodes.TriviaAt(kind, trivia.Span.Start, trivia.Span.End, trivia.Line))
	}
	for _, trivia := range t.Trailing {
		kind, err := c.triviaKind(trivia)
		if err != nil {
			return nil, err
		}
		converted.PushTrailingTrivia(nodes.TriviaAt(kind, trivia.Span.Start, trivia.Span.End, trivia.Line))
	}
	return converted, nil
}

func (c *converter) tokenPtr(t *token.Token) (*nodes.Token, error) {
	if t == nil {
		return nil, nil
	}
	return c.token(*t)
}

func (c *converter) triviaKind(t token.Trivia) (nodes.TriviaKind, error) {
	switch t.Kind {
	case token.TriviaWhitespace:
		return nodes.TriviaWhitespace, nil
	case token.TriviaLineComment, token.TriviaBlockComment:
		return nodes.TriviaComment, nil
	default:
		return 0, c.errAt(ErrTrivia, t.Span, t.Kind.String())
	}
}

// seps converts a separator token list, as carried by punctuated lists.
func (c *converter) seps(list []token.Token) ([]*nodes.Token, error) {
	if !c.opts.HoldTokenData || len(list) == 0 {
		return nil, nil
	}
	converted := make([]*nodes.Token, 0, len(list))
	for _, t := range list {
		tok, err := c.token(t)
		if err != nil {
			return nil, err
		}
		converted = append(converted, tok)
	}
	return converted, nil
}

func (c *converter) identifier(t token.Token) (*nodes.Identifier, error) {
	tok, err := c.token(t)
	if err != nil {
		return nil, err
	}
	return &nodes.Identifier{Name: t.Text, Token: tok}, nil
}

// typedIdentifier builds a typed identifier from a parsed name and an
// already-converted annotation type (nil when unannotated).
func (c *converter) typedIdentifier(name cst.TypedName, annotation nodes.Type) (*nodes.TypedIdentifier, error) {
	identifier, err := c.identifier(name.Name)
	if err != nil {
		return nil, err
	}
	colon, err := c.tokenPtr(name.Colon)
	if err != nil {
		return nil, err
	}
	return &nodes.TypedIdentifier{
		Identifier: *identifier,
		Type:       annotation,
		ColonToken: colon,
	}, nil
}
