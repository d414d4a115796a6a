package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/locate"
	"github.com/xonecas/tsedit/internal/syntax"
	"github.com/xonecas/tsedit/internal/treesitter"
)

// newBuffer builds a TypeScript buffer from src, where "|" marks point.
func newBuffer(t *testing.T, src string) *buffer.Buffer {
	t.Helper()
	point := strings.IndexByte(src, '|')
	if point < 0 {
		t.Fatalf("source %q has no point marker", src)
	}
	b := buffer.New(src[:point]+src[point+1:], buffer.WithParser(treesitter.ParserFor("test.ts")))
	b.SetPoint(point)
	return b
}

type opCase struct {
	name string
	src  string
	want string
}

func runCases(t *testing.T, op func(*buffer.Buffer) error, cases []opCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuffer(t, tt.src)
			if err := op(b); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func logThis(style LogStyle, funcs LogFuncs) func(*buffer.Buffer) error {
	return func(b *buffer.Buffer) error {
		target, err := locate.ResolveLogTarget(b)
		if err != nil && !errors.Is(err, syntax.ErrNoSuitableNode) {
			return err
		}
		return InsertLog(b, target, style, funcs)
	}
}

func TestInsertLog(t *testing.T) {
	runCases(t, logThis(LogPlain, DefaultLogFuncs), []opCase{
		{"after statement", "const |x = 5;\n", "const x = 5;\nconsole.log(\"x = \", x);\n"},
		{"function name at body start",
			"function |greet(name) {\n  return name;\n}\n",
			"function greet(name) {\n  console.log(\"greet = \", greet);\n  return name;\n}\n"},
		{"indented to block depth",
			"function f() {\n  const |y = 1;\n}\n",
			"function f() {\n  const y = 1;\n  console.log(\"y = \", y);\n}\n"},
		{"after trailing comment", "const |x = 5; // five\n", "const x = 5; // five\nconsole.log(\"x = \", x);\n"},
		{"member expression", "user.|name.trim();\n", "user.name.trim();\nconsole.log(\"user.name = \", user.name);\n"},
		{"for loop initializer logs in body",
			"for (let |i = 0; i < 3; i++) {\n  f(i);\n}\n",
			"for (let i = 0; i < 3; i++) {\n  console.log(\"i = \", i);\n  f(i);\n}\n"},
		{"for loop body statement", "for (;;) |f(x);\n", "for (;;) f(x);\nconsole.log(\"f = \", f);\n"},
		{"punctuation logs unknown", "const x = 5|;\n", "const x = 5;\nconsole.log(\"unknown = \", unknown);\n"},
	})

	runCases(t, logThis(LogPlain, LogFuncs{Log: "log"}), []opCase{
		{"custom log function", "const |x = 5;\n", "const x = 5;\nlog(\"x = \", x);\n"},
	})
	runCases(t, logThis(LogPretty, DefaultLogFuncs), []opCase{
		{"pretty", "const |x = 5;\n",
			"const x = 5;\nconsole.log(\"x = \");\nconsole.dir(x, { depth: null, colors: true });\n"},
	})
	runCases(t, logThis(LogDebug, DefaultLogFuncs), []opCase{
		{"debug", "const |x = 5;\n", "const x = 5;\nconsole.debug(\"x = \", x);\n"},
	})
}

func TestInsertLog_SelectionIsQuoted(t *testing.T) {
	b := newBuffer(t, "const v = |a[\"k\"];\n")
	b.SetMark(b.Point() + len(`a["k"]`))
	if err := logThis(LogPlain, DefaultLogFuncs)(b); err != nil {
		t.Fatal(err)
	}
	want := "const v = a[\"k\"];\nconsole.log(\"a[\\\"k\\\"] = \", a[\"k\"]);\n"
	if b.Text() != want {
		t.Errorf("got:\n%s\nwant:\n%s", b.Text(), want)
	}
}

func TestInsertLog_MultiLineSelection(t *testing.T) {
	b := newBuffer(t, "function f() {\n  const t = |a +\n      b;\n}\n")
	b.SetMark(b.Point() + len("a +\n      b"))
	if err := logThis(LogPlain, DefaultLogFuncs)(b); err != nil {
		t.Fatal(err)
	}
	want := "function f() {\n  const t = a +\n      b;\n  console.log(\"a +\\n      b = \", a +\n    b);\n}\n"
	if b.Text() != want {
		t.Errorf("got:\n%s\nwant:\n%s", b.Text(), want)
	}
}

func TestInsertLog_NoParser(t *testing.T) {
	b := buffer.New("const x = 5;")
	err := InsertLog(b, locate.LogTarget{Expr: "x", Pos: 12}, LogPlain, DefaultLogFuncs)
	if !errors.Is(err, syntax.ErrNoParserAvailable) {
		t.Fatalf("err = %v, want ErrNoParserAvailable", err)
	}
	if b.Text() != "const x = 5;" {
		t.Error("buffer must be untouched on error")
	}
}

func TestMoveLine(t *testing.T) {
	runCases(t, MoveLineDown, []opCase{
		{"list items keep commas",
			"const a = [\n  |1,\n  2,\n  3\n];\n",
			"const a = [\n  2,\n  1,\n  3\n];\n"},
		{"comma moves to new predecessor",
			"const a = [\n  1,\n  |2,\n  3\n];\n",
			"const a = [\n  1,\n  3,\n  2\n];\n"},
		{"object entries",
			"const o = {\n  |a: 1,\n  b: 2\n};\n",
			"const o = {\n  b: 2,\n  a: 1\n};\n"},
		{"trailing comment survives",
			"const a = [\n  |1, // one\n  2\n];\n",
			"const a = [\n  2,\n  1 // one\n];\n"},
		{"plain lines", "|a();\nb();\nc();\n", "b();\na();\nc();\n"},
		{"last item into closing bracket is plain",
			"const a = [\n  1,\n  |2\n];\nx();\n",
			"const a = [\n  1,\n];\n2\nx();\n"},
		{"no move past final newline", "a();\n|b();\n", "a();\nb();\n"},
	})
	runCases(t, MoveLineUp, []opCase{
		{"list items up",
			"const a = [\n  1,\n  2,\n  |3\n];\n",
			"const a = [\n  1,\n  3,\n  2\n];\n"},
		{"plain lines up", "a();\n|b();\n", "b();\na();\n"},
		{"first line is a no-op", "|a();\nb();\n", "a();\nb();\n"},
	})
}

func TestMoveLine_Point(t *testing.T) {
	b := newBuffer(t, "foo();\nba|r();\n")
	if err := MoveLineUp(b); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "ba|r();\nfoo();\n" {
		t.Errorf("point not preserved: %q", got)
	}
}

func TestMoveLine_RoundTrip(t *testing.T) {
	srcs := []string{
		"const a = [\n  1,\n  |2,\n  3\n];\n",
		"const a = [\n  1,\n  |2,\n  3,\n];\n",
		"const o = {\n  |a: 1,\n  b: 2\n};\n",
		"f({\n  |x,\n  y\n});\n",
	}
	for _, src := range srcs {
		b := newBuffer(t, src)
		orig := b.Text()
		if err := MoveLineDown(b); err != nil {
			t.Fatal(err)
		}
		if err := MoveLineUp(b); err != nil {
			t.Fatal(err)
		}
		if b.Text() != orig {
			t.Errorf("down+up changed text:\n%s\nwant:\n%s", b.Text(), orig)
		}
	}
}

func TestMoveLine_NoParser(t *testing.T) {
	b := buffer.New("one\ntwo")
	if err := MoveLineDown(b); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "two\none" {
		t.Errorf("got %q", b.Text())
	}
}

func TestStringToTemplate(t *testing.T) {
	runCases(t, StringToTemplate, []opCase{
		{"double quotes", `const s = "|a";`, "const s = `a`;"},
		{"single quotes", `const s = 'i|t';`, "const s = `it`;"},
		{"backtick escaped", "const s = \"a|`b\";", "const s = `a\\`b`;"},
		{"already escaped backtick", "const s = \"a|\\`b\";", "const s = `a\\`b`;"},
		{"substitution escaped", `const s = "|${x}";`, "const s = `\\${x}`;"},
		{"template is a no-op", "const s = `|a${b}`;", "const s = `a${b}`;"},
		{"string inside call", `f(1, "|x");`, "f(1, `x`);"},
	})

	b := newBuffer(t, "const |x = 1;")
	if err := StringToTemplate(b); !errors.Is(err, syntax.ErrNotOnString) {
		t.Errorf("err = %v, want ErrNotOnString", err)
	}
}

func TestSplitOrJoinString(t *testing.T) {
	runCases(t, SplitOrJoinString, []opCase{
		{"split", `const s = "hello |world";`, `const s = "hello " + "world";`},
		{"split single quotes", `const s = 'a|b';`, `const s = 'a' + 'b';`},
		{"split on opening quote", `const s = |"ab";`, `const s = "" + "ab";`},
		{"join from left string", `const s = "a|b" + "cd";`, `const s = "abcd";`},
		{"join from right string", `const s = "ab" + "c|d";`, `const s = "abcd";`},
		{"join without spaces", `const s = "a|b"+"cd";`, `const s = "abcd";`},
	})

	b := newBuffer(t, "const |x = 1;")
	if err := SplitOrJoinString(b); !errors.Is(err, syntax.ErrNotInString) {
		t.Errorf("err = %v, want ErrNotInString", err)
	}
	b = newBuffer(t, "const s = `a${|x}b`;")
	if err := SplitOrJoinString(b); !errors.Is(err, syntax.ErrNotInString) {
		t.Errorf("substitution: err = %v, want ErrNotInString", err)
	}
}

func TestSplitJoinInvolution(t *testing.T) {
	for _, src := range []string{
		`const s = "hello |world";`,
		`const s = '|abc';`,
		"const s = `x|y`;",
		`f("ab|");`,
	} {
		b := newBuffer(t, src)
		orig := b.Text()
		if err := SplitOrJoinString(b); err != nil {
			t.Fatal(err)
		}
		if b.Text() == orig {
			t.Fatalf("split did nothing for %q", src)
		}
		if err := SplitOrJoinString(b); err != nil {
			t.Fatal(err)
		}
		if b.Text() != orig {
			t.Errorf("split+join = %q, want %q", b.Text(), orig)
		}
	}
}

func TestToggleAsync(t *testing.T) {
	runCases(t, ToggleAsync, []opCase{
		{"declaration", "function |f() {}\n", "async function f() {}\n"},
		{"remove", "async function f() { |await g(); }\n", "function f() { await g(); }\n"},
		{"arrow", "const f = (|a) => a;", "const f = async (a) => a;"},
		{"method after modifier", "class A {\n  static |run() {}\n}\n", "class A {\n  static async run() {}\n}\n"},
		{"innermost function", "function outer() {\n  return () => |1;\n}\n", "function outer() {\n  return async () => 1;\n}\n"},
		{"method named async", "class A {\n  |async() { return 1; }\n}\n", "class A {\n  async async() { return 1; }\n}\n"},
		{"static method named async", "class A {\n  static async() { |return 1; }\n}\n", "class A {\n  static async async() { return 1; }\n}\n"},
	})

	b := newBuffer(t, "const |x = 1;")
	if err := ToggleAsync(b); !errors.Is(err, syntax.ErrNoFunctionAtPoint) {
		t.Errorf("err = %v, want ErrNoFunctionAtPoint", err)
	}
}

func TestToggleAsync_Involution(t *testing.T) {
	for _, src := range []string{
		"function |f() {}\n",
		"const f = async (|a) => a;",
		"class A {\n  static async |run() {}\n}\n",
		"export default function |() {}\n",
		"class A {\n  |async() {}\n}\n",
	} {
		b := newBuffer(t, src)
		orig := b.Text()
		for i := 0; i < 2; i++ {
			if err := ToggleAsync(b); err != nil {
				t.Fatal(err)
			}
		}
		if b.Text() != orig {
			t.Errorf("toggle twice = %q, want %q", b.Text(), orig)
		}
	}
}

func TestToggleAsync_MovesPoint(t *testing.T) {
	b := newBuffer(t, "x();\nfunction f() { |g(); }\n")
	if err := ToggleAsync(b); err != nil {
		t.Fatal(err)
	}
	if b.Point() != 5 {
		t.Errorf("point = %d, want function start 5", b.Point())
	}
}

func TestToggleArrowFunction(t *testing.T) {
	runCases(t, ToggleArrowFunction, []opCase{
		{"expression body", "const f = (|a) => a + 1;\n", "const f = function(a) { return a + 1; };\n"},
		{"single parameter sugar", "const f = |a => a * 2;", "const f = function(a) { return a * 2; };"},
		{"block body",
			"const f = (|a, b) => {\n  return a + b;\n};",
			"const f = function(a, b) {\n  return a + b;\n};"},
		{"async arrow", "const f = async (|x) => x;", "const f = async function(x) { return x; };"},
		{"typed arrow", "const f = (|a: number): number => a;", "const f = function(a: number): number { return a; };"},
		{"single return", "const f = function|(a) { return a + 1; };", "const f = a => a + 1;"},
		{"typed parameter keeps parens", "const f = function|(a: number) { return a; };", "const f = (a: number) => a;"},
		{"default keeps parens", "const f = function|(a = 1) { return a; };", "const f = (a = 1) => a;"},
		{"destructuring keeps parens", "const f = function|({ a }) { return a; };", "const f = ({ a }) => a;"},
		{"object literal wrapped", "const f = function|() { return { a: 1 }; };", "const f = () => ({ a: 1 });"},
		{"several statements keep block",
			"const f = function|(a) {\n  const b = a;\n  return b;\n};",
			"const f = a => {\n  const b = a;\n  return b;\n};"},
		{"comment keeps block",
			"const f = function|() {\n  // one\n  return 1;\n};",
			"const f = () => {\n  // one\n  return 1;\n};"},
		{"bare return keeps block", "const f = function|() { return; };", "const f = () => { return; };"},
		{"async function", "const f = async function|(x) { return x; };", "const f = async x => x;"},
		{"innermost wins",
			"const f = function() {\n  return items.map((|i) => i.id);\n};",
			"const f = function() {\n  return items.map(function(i) { return i.id; });\n};"},
	})

	b := newBuffer(t, "function |f() {}")
	if err := ToggleArrowFunction(b); !errors.Is(err, syntax.ErrNoFunctionAtPoint) {
		t.Errorf("declaration: err = %v, want ErrNoFunctionAtPoint", err)
	}
}

func TestToggleArrowFunction_RoundTrip(t *testing.T) {
	tests := []struct {
		src  string
		back string
	}{
		{"const f = (|a) => a + 1;\n", "const f = a => a + 1;\n"},
		{"const f = (|a, b) => {\n  return a + b;\n};", "const f = (a, b) => a + b;"},
		{"const f = (|a: number): number => a;", "const f = (a: number): number => a;"},
		{"const f = async |x => x;", "const f = async x => x;"},
	}
	for _, tt := range tests {
		b := newBuffer(t, tt.src)
		for i := 0; i < 2; i++ {
			if err := ToggleArrowFunction(b); err != nil {
				t.Fatalf("%q toggle %d: %v", tt.src, i, err)
			}
		}
		if b.Text() != tt.back {
			t.Errorf("round trip = %q, want %q", b.Text(), tt.back)
		}
	}
}

func TestTemplateEdits(t *testing.T) {
	edits := TemplateEdits(10, "\"a`b\"")
	if len(edits) != 3 {
		t.Fatalf("got %d edits, want 3", len(edits))
	}
	if edits[0] != (buffer.Edit{Start: 14, End: 15, Text: "`"}) {
		t.Errorf("closing edit = %+v", edits[0])
	}
	if edits[1] != (buffer.Edit{Start: 12, End: 12, Text: `\`}) {
		t.Errorf("escape edit = %+v", edits[1])
	}
	if edits[2] != (buffer.Edit{Start: 10, End: 11, Text: "`"}) {
		t.Errorf("opening edit = %+v", edits[2])
	}
}
