package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

var (
	pyClassRE = regexp.MustCompile(`^class\s+([\p{L}_][\p{L}\p{N}_]*)`)
	pyDefRE   = regexp.MustCompile(`^(?:async\s+)?def\s+([\p{L}_][\p{L}\p{N}_]*)`)
)

// Python extracts top-level classes (with their methods) and functions
// from .py files.
type Python struct{}

func (Python) Language() string { return LanguagePython }

func (Python) Supports(path string) bool { return hasExt(path, ".py", ".pyi") }

func (Python) Extract(path string, src []byte) (*tree.Node, error) {
	lines, err := scanPython(src)
	if err != nil {
		return nil, err
	}
	if err := checkIndent(lines); err != nil {
		return nil, err
	}

	mod := moduleNode(path)
	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if ln.indent != 0 {
			continue
		}
		if m := pyDefRE.FindStringSubmatch(ln.text); m != nil {
			mod.Children = append(mod.Children, &tree.Node{Kind: tree.KindFunction, Label: m[1]})
			continue
		}
		m := pyClassRE.FindStringSubmatch(ln.text)
		if m == nil {
			continue
		}
		cls := &tree.Node{Kind: tree.KindClass, Label: m[1]}
		if ln.opener && i+1 < len(lines) {
			body := lines[i+1].indent
			for j := i + 1; j < len(lines) && lines[j].indent > 0; j++ {
				if lines[j].indent != body {
					continue
				}
				if dm := pyDefRE.FindStringSubmatch(lines[j].text); dm != nil {
					cls.Children = append(cls.Children, &tree.Node{Kind: tree.KindMethod, Label: dm[1]})
				}
			}
		}
		mod.Children = append(mod.Children, cls)
	}
	return mod, nil
}

// pyLine is one logical line: physical lines joined by open brackets or
// backslash continuations, with comments dropped and string bodies elided.
type pyLine struct {
	num    int
	indent int
	text   string
	// opener is set when the line ends in a block-opening colon.
	opener bool
}

type pyBracket struct {
	r    rune
	line int
}

var pyClosers = map[rune]rune{')': '(', ']': '[', '}': '{'}

func scanPython(src []byte) ([]pyLine, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("invalid utf-8 encoding")
	}
	s := string(src)

	var (
		lines   []pyLine
		cur     strings.Builder
		stack   []pyBracket
		lineNo  = 1
		start   = -1
		indent  int
		col     int
		leading = true
		last    rune
	)
	flush := func() {
		if text := strings.TrimSpace(cur.String()); text != "" {
			lines = append(lines, pyLine{num: start, indent: indent, text: text, opener: last == ':'})
		}
		cur.Reset()
		start, col, last, leading = -1, 0, 0, true
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		if leading {
			switch r {
			case ' ':
				col++
				i += size
				continue
			case '\t':
				col = (col/8 + 1) * 8
				i += size
				continue
			case '\f':
				col = 0
				i += size
				continue
			}
			leading = false
			indent = col
		}

		switch {
		case r == '\r':
			i += size
		case r == '\n':
			if len(stack) > 0 {
				cur.WriteByte(' ')
			} else {
				flush()
			}
			lineNo++
			i += size
		case r == '#':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case r == '\\':
			next := i + 1
			if next < len(s) && s[next] == '\r' {
				next++
			}
			if next >= len(s) || s[next] != '\n' {
				return nil, fmt.Errorf("line %d: unexpected character after line continuation character", lineNo)
			}
			cur.WriteByte(' ')
			lineNo++
			i = next + 1
		case r == '\'' || r == '"':
			if start < 0 {
				start = lineNo
			}
			end, n, err := skipPyString(s, i, lineNo)
			if err != nil {
				return nil, err
			}
			cur.WriteString(`""`)
			last = r
			lineNo += n
			i = end
		case r == '(' || r == '[' || r == '{':
			if start < 0 {
				start = lineNo
			}
			stack = append(stack, pyBracket{r: r, line: lineNo})
			cur.WriteRune(r)
			last = r
			i += size
		case pyClosers[r] != 0:
			if start < 0 {
				start = lineNo
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("line %d: unmatched '%c'", lineNo, r)
			}
			open := stack[len(stack)-1]
			if open.r != pyClosers[r] {
				return nil, fmt.Errorf("line %d: closing parenthesis '%c' does not match opening parenthesis '%c' on line %d", lineNo, r, open.r, open.line)
			}
			stack = stack[:len(stack)-1]
			cur.WriteRune(r)
			last = r
			i += size
		default:
			if r != ' ' && r != '\t' {
				if start < 0 {
					start = lineNo
				}
				last = r
			}
			cur.WriteRune(r)
			i += size
		}
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, fmt.Errorf("line %d: '%c' was never closed", open.line, open.r)
	}
	flush()
	return lines, nil
}

// skipPyString returns the offset just past the string literal starting at
// s[i] and how many newlines it spans.
func skipPyString(s string, i, lineNo int) (end, newlines int, err error) {
	q := s[i]
	triple := strings.HasPrefix(s[i:], strings.Repeat(string(q), 3))
	j := i + 1
	if triple {
		j = i + 3
	}
	for j < len(s) {
		c := s[j]
		switch {
		case c == '\\':
			if j+1 < len(s) && s[j+1] == '\n' {
				newlines++
			}
			j += 2
			continue
		case c == '\n':
			if !triple {
				return 0, 0, fmt.Errorf("line %d: unterminated string literal", lineNo)
			}
			newlines++
		case c == q:
			if !triple {
				return j + 1, newlines, nil
			}
			if strings.HasPrefix(s[j:], strings.Repeat(string(q), 3)) {
				return j + 3, newlines, nil
			}
		}
		j++
	}
	if triple {
		return 0, 0, fmt.Errorf("line %d: unterminated triple-quoted string literal", lineNo)
	}
	return 0, 0, fmt.Errorf("line %d: unterminated string literal", lineNo)
}

// checkIndent applies the block structure rules of the Python tokenizer.
func checkIndent(lines []pyLine) error {
	levels := []int{0}
	for i, ln := range lines {
		top := levels[len(levels)-1]
		switch {
		case i > 0 && lines[i-1].opener:
			if ln.indent <= top {
				return fmt.Errorf("line %d: expected an indented block after line %d", ln.num, lines[i-1].num)
			}
			levels = append(levels, ln.indent)
		case ln.indent > top:
			return fmt.Errorf("line %d: unexpected indent", ln.num)
		case ln.indent < top:
			for len(levels) > 1 && levels[len(levels)-1] > ln.indent {
				levels = levels[:len(levels)-1]
			}
			if levels[len(levels)-1] != ln.indent {
				return fmt.Errorf("line %d: unindent does not match any outer indentation level", ln.num)
			}
		}
	}
	if n := len(lines); n > 0 && lines[n-1].opener {
		return fmt.Errorf("line %d: expected an indented block", lines[n-1].num)
	}
	return nil
}
