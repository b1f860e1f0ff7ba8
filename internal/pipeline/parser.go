package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// mode is the structural context the scanner is in. Modes are mutually exclusive.
type mode int

const (
	modeNormal mode = iota
	modeCode
	modeTable
	modeList
)

// Heading prefixes, longest first so "### " is not taken for "# ".
var headingPrefixes = []struct {
	prefix string
	tag    string
}{
	{"### ", "h3"},
	{"## ", "h2"},
	{"# ", "h1"},
}

// fencePattern matches a code fence with an optional language tag.
var fencePattern = regexp.MustCompile("^```([\\w+#.-]*)$")

// DiagnosticKind classifies a recovered malformed-input condition.
type DiagnosticKind int

const (
	// UnterminatedCode reports a code fence still open at end of input.
	UnterminatedCode DiagnosticKind = iota + 1
	// UnterminatedTable reports table rows still buffered at end of input.
	UnterminatedTable
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnterminatedCode:
		return "unterminated code block"
	case UnterminatedTable:
		return "unterminated table"
	default:
		return "unknown"
	}
}

// Diagnostic records a construct that was flushed in closed form at end of input.
// Line is the 1-based line where the construct started.
type Diagnostic struct {
	Kind DiagnosticKind
	Line int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s starting at line %d", d.Kind, d.Line)
}

// Highlighter renders a fenced code block that carries a language tag.
// It returns false when it cannot handle the language, in which case the
// plain <pre><code> form is emitted.
type Highlighter interface {
	Highlight(code, lang string) (string, bool)
}

// ParseOptions tunes block parsing. The zero value produces the plain form.
type ParseOptions struct {
	Highlighter Highlighter
}

// ParseResult holds the fragments emitted by a parse, in order.
type ParseResult struct {
	Fragments   []string
	Diagnostics []Diagnostic
}

// HTML joins the fragments with newline separators.
func (r ParseResult) HTML() string {
	return strings.Join(r.Fragments, "\n")
}

// scanState is the per-call parse state threaded through the fold.
type scanState struct {
	mode     mode
	lang     string     // fence language tag (modeCode)
	code     []string   // buffered code lines (modeCode)
	rows     [][]string // buffered table rows (modeTable)
	openedAt int        // line where the code block or table started
}

// Parse converts a post body into HTML fragments, one per recognized line or
// closed multi-line block.
//
// An unterminated code block or table at end of input is flushed in its closed
// form and reported as a Diagnostic; an open list is closed silently.
func Parse(body string, opts ParseOptions) ParseResult {
	p := blockParser{opts: opts}
	lines := strings.Split(body, "\n")

	var (
		st    scanState
		frags []string
		out   = make([]string, 0, len(lines))
	)
	for i, line := range lines {
		st, frags = p.step(st, line, i+1)
		out = append(out, frags...)
	}

	frags, diag := p.finish(st)
	out = append(out, frags...)

	result := ParseResult{Fragments: out}
	if diag != nil {
		result.Diagnostics = append(result.Diagnostics, *diag)
	}
	return result
}

// blockParser carries the immutable options of one parse.
type blockParser struct {
	opts ParseOptions
}

// step consumes one line and returns the next state with the fragments emitted.
func (p blockParser) step(st scanState, line string, lineNo int) (scanState, []string) {
	if st.mode == modeCode {
		if _, ok := parseFence(line); ok {
			return scanState{}, []string{p.codeBlock(st.lang, st.code)}
		}
		st.code = append(st.code, line)
		return st, nil
	}

	var out []string
	cells, isRow := parseTableRow(line)

	// The line that ends a table is not consumed: it falls through to the rules below.
	if st.mode == modeTable && !isRow {
		out = append(out, renderTable(st.rows))
		st = scanState{}
	}

	if lang, ok := parseFence(line); ok {
		out = closeList(st, out)
		return scanState{mode: modeCode, lang: lang, openedAt: lineNo}, out
	}

	if isRow {
		out = closeList(st, out)
		if st.mode != modeTable {
			st = scanState{mode: modeTable, openedAt: lineNo}
		}
		st.rows = append(st.rows, cells)
		return st, out
	}

	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			out = closeList(st, out)
			text := FormatInline(line[len(h.prefix):])
			return scanState{}, append(out, "<"+h.tag+">"+text+"</"+h.tag+">")
		}
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		if st.mode != modeList {
			out = append(out, "<ul>")
		}
		return scanState{mode: modeList}, append(out, "<li>"+FormatInline(trimmed[2:])+"</li>")
	}

	out = closeList(st, out)
	switch {
	case trimmed == "":
		out = append(out, "")
	case trimmed == "---":
		out = append(out, "<hr>")
	case strings.HasPrefix(trimmed, "<"):
		out = append(out, line)
	default:
		out = append(out, "<p>"+FormatInline(trimmed)+"</p>")
	}
	return scanState{}, out
}

// finish flushes whatever construct is still open at end of input.
func (p blockParser) finish(st scanState) ([]string, *Diagnostic) {
	switch st.mode {
	case modeList:
		return []string{"</ul>"}, nil
	case modeCode:
		return []string{p.codeBlock(st.lang, st.code)}, &Diagnostic{Kind: UnterminatedCode, Line: st.openedAt}
	case modeTable:
		return []string{renderTable(st.rows)}, &Diagnostic{Kind: UnterminatedTable, Line: st.openedAt}
	default:
		return nil, nil
	}
}

// codeBlock wraps buffered code lines. Content is emitted verbatim.
func (p blockParser) codeBlock(lang string, lines []string) string {
	code := strings.Join(lines, "\n")
	if p.opts.Highlighter != nil && lang != "" {
		if highlighted, ok := p.opts.Highlighter.Highlight(code, lang); ok {
			return highlighted
		}
	}
	return "<pre><code>" + code + "</code></pre>"
}

// closeList appends the list terminator when the state has a list open.
func closeList(st scanState, out []string) []string {
	if st.mode == modeList {
		return append(out, "</ul>")
	}
	return out
}

// parseFence reports whether line is a code fence and returns its language tag.
func parseFence(line string) (string, bool) {
	m := fencePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseTableRow splits a pipe-delimited row into trimmed cells.
func parseTableRow(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
		return nil, false
	}

	parts := strings.Split(trimmed, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells, true
}

// isSeparatorRow reports whether every cell of a row contains a hyphen.
// A row with no cells counts as a separator.
func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !strings.Contains(c, "-") {
			return false
		}
	}
	return true
}

// renderTable builds a table from buffered rows. Row 0 is the header; row 1 is
// dropped when it looks like a separator.
func renderTable(rows [][]string) string {
	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	if len(rows) > 0 {
		for _, cell := range rows[0] {
			b.WriteString("<th>" + FormatInline(cell) + "</th>")
		}
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	start := 1
	if len(rows) > 1 && isSeparatorRow(rows[1]) {
		start = 2
	}
	for i := start; i < len(rows); i++ {
		b.WriteString("<tr>")
		for _, cell := range rows[i] {
			b.WriteString("<td>" + FormatInline(cell) + "</td>")
		}
		b.WriteString("</tr>\n")
	}

	b.WriteString("</tbody>\n</table>")
	return b.String()
}
