// Package driver runs the processing pipeline over files and
// directories: read, parse, convert, apply rules, generate, write.
// Directory runs process files in parallel and cache outputs on disk
// keyed by content and configuration.
package driver

import (
	"fmt"

	"luamend/internal/convert"
	"luamend/internal/generator"
	"luamend/internal/nodes"
	"luamend/internal/parser"
	"luamend/internal/rules"
)

// Options controls one processing run.
type Options struct {
	// HoldTokenData keeps original tokens on the converted tree so the
	// output preserves the input's formatting.
	HoldTokenData bool
	// LenientStatements skips statements the converter cannot model
	// instead of failing the file.
	LenientStatements bool
	// Jobs bounds directory-run parallelism; zero means GOMAXPROCS.
	Jobs int
	// Output is the directory results are written under. Empty writes
	// in place.
	Output string
	// NoCache disables the disk cache.
	NoCache bool
}

// ProcessSource runs the pipeline on one chunk of source text.
func ProcessSource(src string, chain []rules.Rule, opts Options) (string, error) {
	parsed, err := parser.Parse(src)
	if err != nil {
		return "", err
	}
	block, err := convert.Convert(src, parsed, convert.Options{
		HoldTokenData:     opts.HoldTokenData,
		LenientStatements: opts.LenientStatements,
	})
	if err != nil {
		return "", err
	}
	context := &rules.Context{Source: src}
	for _, rule := range chain {
		if err := rule.Apply(block, context); err != nil {
			return "", fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
	}
	return generator.New(src).Generate(block), nil
}

// ParseSource parses and converts one chunk without applying rules,
// for tree inspection.
func ParseSource(src string, opts Options) (*nodes.Block, error) {
	parsed, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return convert.Convert(src, parsed, convert.Options{
		HoldTokenData:     opts.HoldTokenData,
		LenientStatements: opts.LenientStatements,
	})
}
