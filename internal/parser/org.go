// Package parser is the entry point for turning org text into a document
// tree: it runs the lexer and the grammar and attaches lexer diagnostics.
package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/grammar"
	"github.com/gerunddev/orgparse/internal/lexer"
	"github.com/gerunddev/orgparse/internal/token"
)

// ErrPartialDocument is returned together with a document that holds only
// the preamble and preface because the rest could not be parsed.
var ErrPartialDocument = errors.New("partial document")

// ParseOrg parses org content into a document tree.
//
// When the full grammar fails, ParseOrg still returns the preamble and
// preface it could read, with Partial set, and an error wrapping
// ErrPartialDocument. A nil document means not even that much parsed.
func ParseOrg(content string) (*ast.Document, error) {
	toks := lexer.Tokenize(content)
	diags := token.Diagnostics(toks)

	doc, err := grammar.Parse(toks)
	if err == nil {
		doc.Diagnostics = diags
		return doc, nil
	}

	partial, headErr := grammar.ParseHead(toks)
	if headErr != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	partial.Diagnostics = diags
	return partial, fmt.Errorf("%w: %w", ErrPartialDocument, err)
}

type result struct {
	doc *ast.Document
	err error
}

// Parse runs ParseOrg on its own goroutine and gives up waiting when ctx is
// done. Parsing itself cannot be interrupted; an abandoned parse finishes
// in the background and its result is dropped.
func Parse(ctx context.Context, content string) (*ast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan result, 1)
	go func() {
		doc, err := ParseOrg(content)
		done <- result{doc: doc, err: err}
	}()

	select {
	case r := <-done:
		return r.doc, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("parse abandoned: %w", ctx.Err())
	}
}

// Tokens returns the lexer output for content.
func Tokens(content string) []token.Token {
	return lexer.Tokenize(content)
}
