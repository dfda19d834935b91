// Package nodepath addresses nodes inside a block with a flat sequence
// of typed, indexed components. A path is resolved against the live
// tree; the meaning of each component depends on the node it is applied
// to, and resolution reports not-found instead of panicking when the
// tree no longer matches the path.
package nodepath

import (
	"fmt"
	"strings"
)

type ComponentKind uint8

const (
	StatementComponent ComponentKind = iota
	ExpressionComponent
	BlockComponent
)

// delimiter returns the single-character suffix encoding the component
// kind in the text form.
func (k ComponentKind) delimiter() byte {
	switch k {
	case ExpressionComponent:
		return ':'
	case BlockComponent:
		return '#'
	default:
		return '/'
	}
}

func (k ComponentKind) String() string {
	switch k {
	case StatementComponent:
		return "statement"
	case ExpressionComponent:
		return "expression"
	case BlockComponent:
		return "block"
	default:
		return "<unknown>"
	}
}

// Component is one step of a path.
type Component struct {
	Kind  ComponentKind
	Index int
}

// Path is an immutable sequence of components. The zero value denotes
// the root block.
type Path struct {
	components []Component
}

// New returns the empty path, addressing the root block.
func New() Path {
	return Path{}
}

// FromComponents builds a path from an explicit component list.
func FromComponents(components ...Component) Path {
	return Path{components: append([]Component(nil), components...)}
}

func (p Path) Components() []Component {
	return p.components
}

func (p Path) Len() int {
	return len(p.components)
}

func (p Path) IsRoot() bool {
	return len(p.components) == 0
}

func (p Path) join(component Component) Path {
	joined := make([]Component, len(p.components)+1)
	copy(joined, p.components)
	joined[len(p.components)] = component
	return Path{components: joined}
}

// Statement returns the path extended with a statement component.
func (p Path) Statement(index int) Path {
	return p.join(Component{Kind: StatementComponent, Index: index})
}

// Expression returns the path extended with an expression component.
func (p Path) Expression(index int) Path {
	return p.join(Component{Kind: ExpressionComponent, Index: index})
}

// Block returns the path extended with a block component.
func (p Path) Block(index int) Path {
	return p.join(Component{Kind: BlockComponent, Index: index})
}

// Parent returns the path with its last component removed. The second
// result is false for the root path.
func (p Path) Parent() (Path, bool) {
	if len(p.components) == 0 {
		return Path{}, false
	}
	return Path{components: p.components[:len(p.components)-1]}, true
}

// Last returns the final component, if any.
func (p Path) Last() (Component, bool) {
	if len(p.components) == 0 {
		return Component{}, false
	}
	return p.components[len(p.components)-1], true
}

// String encodes the path: each component's base-10 index followed by
// its kind delimiter (`/` statement, `:` expression, `#` block).
func (p Path) String() string {
	var out strings.Builder
	for _, component := range p.components {
		fmt.Fprintf(&out, "%d%c", component.Index, component.Kind.delimiter())
	}
	return out.String()
}

// Parse decodes the text form produced by String. A trailing component
// without a delimiter is read as a statement component. Only ASCII
// digits and the three delimiters are accepted.
func Parse(text string) (Path, error) {
	path := Path{}
	index := 0
	haveDigits := false
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch {
		case b >= '0' && b <= '9':
			index = index*10 + int(b-'0')
			if index > 1<<31-1 {
				return Path{}, fmt.Errorf("path %q: index out of range", text)
			}
			haveDigits = true
		case b == '/' || b == ':' || b == '#':
			if !haveDigits {
				return Path{}, fmt.Errorf("path %q: delimiter %q at offset %d without an index", text, b, i)
			}
			path.components = append(path.components, Component{
				Kind:  kindForDelimiter(b),
				Index: index,
			})
			index = 0
			haveDigits = false
		case b >= 0x80:
			return Path{}, fmt.Errorf("path %q: non-ASCII byte at offset %d", text, i)
		default:
			return Path{}, fmt.Errorf("path %q: unexpected character %q at offset %d", text, b, i)
		}
	}
	if haveDigits {
		path.components = append(path.components, Component{
			Kind:  StatementComponent,
			Index: index,
		})
	}
	return path, nil
}

func kindForDelimiter(b byte) ComponentKind {
	switch b {
	case ':':
		return ExpressionComponent
	case '#':
		return BlockComponent
	default:
		return StatementComponent
	}
}
