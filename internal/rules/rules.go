// Package rules implements the rewrite passes a processing run applies
// to a converted block, and the name-keyed registry the configuration
// layer builds them from.
package rules

import (
	"fmt"
	"sort"

	"luamend/internal/nodes"
)

// Context carries per-file information a rule may need while rewriting.
type Context struct {
	// Source is the original file text referenced tokens point into.
	Source string
	// Path is the file being processed, for error messages.
	Path string
}

// Rule is one rewrite pass over a block. Configure receives the
// properties from the configuration file and must reject unknown keys.
type Rule interface {
	Name() string
	Configure(properties map[string]any) error
	Apply(block *nodes.Block, context *Context) error
}

var registry = map[string]func() Rule{
	"remove_comments":    func() Rule { return &RemoveComments{} },
	"remove_whitespaces": func() Rule { return &RemoveWhitespaces{} },
	"remove_empty_do":    func() Rule { return &RemoveEmptyDo{} },
	"shift_lines":        func() Rule { return &ShiftLines{} },
}

// New returns a fresh, unconfigured rule by name.
func New(name string) (Rule, error) {
	create, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q (known rules: %v)", name, Names())
	}
	return create(), nil
}

// Names lists the registered rule names in stable order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rejectUnknown errors on any property key outside the accepted set.
func rejectUnknown(rule string, properties map[string]any, accepted ...string) error {
	for key := range properties {
		known := false
		for _, name := range accepted {
			if key == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("rule %s: unknown property %q", rule, key)
		}
	}
	return nil
}

func intProperty(rule, key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("rule %s: property %q must be an integer", rule, key)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("rule %s: property %q must be an integer, got %T", rule, key, value)
}

func stringListProperty(rule, key string, value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("rule %s: property %q must hold strings, got %T", rule, key, item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("rule %s: property %q must be a string list, got %T", rule, key, value)
}
