package rules

import (
	"fmt"
	"regexp"

	"luamend/internal/nodes"
)

// RemoveComments strips comment trivia from every token. Comments
// matching one of the configured keep patterns survive, which preserves
// directives like license headers or linter pragmas.
type RemoveComments struct {
	keep []*regexp.Regexp
}

func (r *RemoveComments) Name() string { return "remove_comments" }

func (r *RemoveComments) Configure(properties map[string]any) error {
	if err := rejectUnknown(r.Name(), properties, "keep"); err != nil {
		return err
	}
	value, ok := properties["keep"]
	if !ok {
		return nil
	}
	patterns, err := stringListProperty(r.Name(), "keep", value)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("rule %s: invalid keep pattern %q: %w", r.Name(), pattern, err)
		}
		r.keep = append(r.keep, compiled)
	}
	return nil
}

func (r *RemoveComments) Apply(block *nodes.Block, context *Context) error {
	if len(r.keep) == 0 {
		nodes.ClearComments(block)
		return nil
	}
	// the filter predicate sees owned content only
	nodes.ReplaceReferencedTokens(block, context.Source)
	nodes.FilterComments(block, func(content string) bool {
		for _, pattern := range r.keep {
			if pattern.MatchString(content) {
				return true
			}
		}
		return false
	})
	return nil
}

// RemoveWhitespaces strips whitespace trivia from every token. The
// generator re-inserts single spaces only where gluing would change how
// the output lexes, so this densifies the file.
type RemoveWhitespaces struct{}

func (r *RemoveWhitespaces) Name() string { return "remove_whitespaces" }

func (r *RemoveWhitespaces) Configure(properties map[string]any) error {
	return rejectUnknown(r.Name(), properties)
}

func (r *RemoveWhitespaces) Apply(block *nodes.Block, context *Context) error {
	nodes.ClearWhitespaces(block)
	return nil
}

// RemoveEmptyDo deletes `do end` statements with no body, anywhere in
// the tree. Nested blocks are rewritten first, so a do statement whose
// content was itself emptied goes too.
type RemoveEmptyDo struct{}

func (r *RemoveEmptyDo) Name() string { return "remove_empty_do" }

func (r *RemoveEmptyDo) Configure(properties map[string]any) error {
	return rejectUnknown(r.Name(), properties)
}

func (r *RemoveEmptyDo) Apply(block *nodes.Block, context *Context) error {
	eachBlock(block, func(b *nodes.Block) {
		b.FilterStatements(func(statement nodes.Statement) bool {
			do, ok := statement.(*nodes.DoStatement)
			return !ok || !do.Block.IsEmpty()
		})
	})
	return nil
}

// ShiftLines adds a fixed amount to the recorded line of every token,
// used when generated output is prepended with a known number of lines.
type ShiftLines struct {
	shift int
}

func (r *ShiftLines) Name() string { return "shift_lines" }

func (r *ShiftLines) Configure(properties map[string]any) error {
	if err := rejectUnknown(r.Name(), properties, "shift"); err != nil {
		return err
	}
	value, ok := properties["shift"]
	if !ok {
		return fmt.Errorf("rule %s: missing required property %q", r.Name(), "shift")
	}
	shift, err := intProperty(r.Name(), "shift", value)
	if err != nil {
		return err
	}
	r.shift = shift
	return nil
}

func (r *ShiftLines) Apply(block *nodes.Block, context *Context) error {
	nodes.ShiftTokenLine(block, r.shift)
	return nil
}
