// Package report renders processing failures for humans: the location,
// the offending source line and a caret under the offending span.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"luamend/internal/convert"
	"luamend/internal/lexer"
	"luamend/internal/parser"
	"luamend/internal/source"
)

// Writer renders errors to out. Color is per-writer so piped output
// stays clean while a TTY gets severity colors.
type Writer struct {
	out      io.Writer
	severity *color.Color
	location *color.Color
	caret    *color.Color
}

func New(out io.Writer, colorEnabled bool) *Writer {
	w := &Writer{
		out:      out,
		severity: color.New(color.FgRed, color.Bold),
		location: color.New(color.FgCyan),
		caret:    color.New(color.FgYellow, color.Bold),
	}
	if !colorEnabled {
		w.severity.DisableColor()
		w.location.DisableColor()
		w.caret.DisableColor()
	}
	return w
}

// Error renders err for the named file. Syntax and lexical errors get a
// source snippet with a caret; conversion errors print their category
// and offending text.
func (w *Writer) Error(path, src string, err error) {
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		w.spanned(path, src, parseErr.Span, parseErr.Line, "syntax error", parseErr.Msg)
		return
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		w.spanned(path, src, lexErr.Span, lexErr.Line, "lexical error", lexErr.Msg)
		return
	}
	var convErr *convert.Error
	if errors.As(err, &convErr) {
		w.plain(path, convErr.Error())
		return
	}
	w.plain(path, err.Error())
}

func (w *Writer) plain(path, message string) {
	fmt.Fprintf(w.out, "%s %s: %s\n", w.severity.Sprint("error:"), w.location.Sprint(path), message)
}

func (w *Writer) spanned(path, src string, span source.Span, line int, category, message string) {
	fmt.Fprintf(w.out, "%s %s: %s: %s\n",
		w.severity.Sprint("error:"),
		w.location.Sprintf("%s:%d", path, line),
		category, message)

	lineText, prefix, spanText, ok := sliceLine(src, span, line)
	if !ok {
		return
	}
	fmt.Fprintf(w.out, "  %s\n", expandTabs(strings.TrimRight(lineText, "\r\n")))
	pad := runewidth.StringWidth(expandTabs(prefix))
	width := max(runewidth.StringWidth(spanText), 1)
	fmt.Fprintf(w.out, "  %s%s\n", strings.Repeat(" ", pad), w.caret.Sprint(strings.Repeat("^", width)))
}

// sliceLine extracts the source line holding span, the text before the
// span on that line, and the part of the span on that line.
func sliceLine(src string, span source.Span, line int) (lineText, prefix, spanText string, ok bool) {
	lines := source.NewLineIndex(src)
	contentLen, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return "", "", "", false
	}
	lineSpan, ok := lines.LineSpan(line, contentLen)
	if !ok || span.Start < lineSpan.Start || span.Start > lineSpan.End {
		return "", "", "", false
	}
	lineText = lineSpan.Read(src)
	prefix = src[lineSpan.Start:span.Start]
	end := min(span.End, lineSpan.End)
	if end < span.Start {
		end = span.Start
	}
	spanText = src[span.Start:end]
	return lineText, prefix, spanText, true
}

// expandTabs keeps the caret aligned under lines rendered with the
// terminal's 8-column tab stops.
func expandTabs(prefix string) string {
	if !strings.Contains(prefix, "\t") {
		return prefix
	}
	var out strings.Builder
	column := 0
	for _, r := range prefix {
		if r == '\t' {
			spaces := 8 - column%8
			out.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		out.WriteRune(r)
		column += runewidth.RuneWidth(r)
	}
	return out.String()
}
