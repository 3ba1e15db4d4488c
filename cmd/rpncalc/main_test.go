package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errout bytes.Buffer
	if args == nil {
		// cobra reads os.Args when given nil.
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errout)
	err := cmd.Execute()
	return out.String(), errout.String(), err
}

func TestRun(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"1+2", "2^3^2"}, "3\n512\n"},
		{"errors-continue", "", []string{"1/0", "(1+2", "5!"}, "2: division by zero\n5: 1 unclosed parentheses\n120\n"},
		{"stdin", "1+1\n\n  2*3  \n", nil, "2\n6\n"},
		{"stdin-dash", "4-1\n", []string{"--in=-", "1+1"}, "3\n2\n"},
		{"echo", "", []string{"--echo", "(1+2)*3"}, "1 2 + 3 * : 9\n"},
		{"fmt", "", []string{"--fmt", "%.3f", "1/3"}, "0.333\n"},
		{"variant", "", []string{"--variant", "standard", "5!", "1+1"}, "2: invalid character '!'\n2\n"},
		{"prec", "", []string{"--prec", "128", "7//2", "25!"}, "3\n1.5511210043330985984e+25\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, _, err := execute(t, c.stdin, c.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != c.want {
				t.Errorf("wrong output:\nwant %q\ngot  %q", c.want, out)
			}
		})
	}
}

func TestRunUnknownVariant(t *testing.T) {
	_, _, err := execute(t, "", "--variant", "nope", "1")
	if err == nil || !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("want unknown variant error, got %v", err)
	}
}

func TestRunVerbose(t *testing.T) {
	out, log, err := execute(t, "", "-v", "1+2")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n" {
		t.Errorf("wrong output %q", out)
	}
	for _, s := range []string{"level=DEBUG", `rpn="1 2 +"`, "result=3"} {
		if !strings.Contains(log, s) {
			t.Errorf("log does not contain %q:\n%s", s, log)
		}
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "variants.yaml")
	const doc = "variants:\n  tiny:\n    base: standard\n    max_length: 3\n"
	if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "-c", name, "--variant", "tiny", "1+2", "1+22")
	if err != nil {
		t.Fatal(err)
	}
	if want := "3\nexpression length 4 exceeds limit 3\n"; out != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, out)
	}
}

func TestVariantsCmd(t *testing.T) {
	out, _, err := execute(t, "", "variants")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"variants:", "  basic:", "  default:", "  scientific:", "  standard:", "bounds: digits", "max_terms: 15"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
	if _, _, err := execute(t, "", "variants", "extra"); err == nil {
		t.Error("variants accepted an argument")
	}
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(io.MultiReader(strings.NewReader("a\n \n"), strings.NewReader("b\r\nc")))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(lines, ","); got != "a,b,c" {
		t.Errorf("want a,b,c, got %s", got)
	}
}
