package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const pySample = `import os

class Shape(Base):
    """A shape."""
    sides = {'a': 1,
             'b': 2}

    def area(self):
        def inner(): pass
        return 1

    @property
    async def name(self): ...

def build(a,
          b):
    # comment: with colon
    return Shape()

async def fetch():
    s = "def not_a_function():"
    return s

class Empty: pass
`

func TestPythonExtract(t *testing.T) {
	n, err := Python{}.Extract("pkg/shapes.py", []byte(pySample))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	want := []string{
		"module shapes.py",
		"  class Shape",
		"    method area",
		"    method name",
		"  function build",
		"  function fetch",
		"  class Empty",
	}
	if diff := cmp.Diff(want, outline(n)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestPythonExtractTabsAndCRLF(t *testing.T) {
	src := "class A:\r\n\tdef one(self):\r\n\t\tpass\r\n\tdef two(self):\r\n\t\tpass\r\n"
	n, err := Python{}.Extract("a.py", []byte(src))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	want := []string{"module a.py", "  class A", "    method one", "    method two"}
	if diff := cmp.Diff(want, outline(n)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestPythonExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unclosed bracket", "def f(:\n", "line 1: '(' was never closed"},
		{"unexpected indent", "  x = 1\n", "line 1: unexpected indent"},
		{"missing block", "def f():\nreturn 1\n", "line 2: expected an indented block after line 1"},
		{"missing block at end", "def f():\n", "line 1: expected an indented block"},
		{"bad dedent", "if x:\n        a = 1\n    b = 2\n", "line 3: unindent does not match"},
		{"unterminated string", "s = 'abc\n", "line 1: unterminated string literal"},
		{"unterminated triple", "s = '''abc\n", "unterminated triple-quoted string literal"},
		{"mismatched bracket", "x = (1]\n", "closing parenthesis ']' does not match opening parenthesis '('"},
		{"unmatched closer", "x = 1)\n", "line 1: unmatched ')'"},
		{"bad continuation", "x = 1 \\ y\n", "unexpected character after line continuation"},
		{"invalid utf-8", "x = '\xff'\n", "invalid utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Python{}.Extract("bad.py", []byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestPythonSupports(t *testing.T) {
	tests := map[string]bool{"a.py": true, "A.PY": true, "types.pyi": true, "a.pyc": false, "py": false}
	for path, want := range tests {
		if got := (Python{}).Supports(path); got != want {
			t.Errorf("Supports(%q) = %v, want %v", path, got, want)
		}
	}
}
