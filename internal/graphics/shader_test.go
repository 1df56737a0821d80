package graphics

import (
	"strings"
	"testing"
)

func TestInjectDefinesAfterVersion(t *testing.T) {
	src := "#version 460 core\nvoid main() {}\n"
	out := injectDefines(src, []Define{
		{Name: "FOO", Value: "1u"},
		{Name: "BAR", Value: "2u"},
	})

	lines := strings.Split(out, "\n")
	if lines[0] != "#version 460 core" {
		t.Fatalf("version directive must stay first: %q", lines[0])
	}
	if lines[1] != "#define FOO 1u" || lines[2] != "#define BAR 2u" {
		t.Fatalf("defines not injected in order: %q %q", lines[1], lines[2])
	}
	if !strings.Contains(out, "void main() {}") {
		t.Fatal("body lost")
	}
}

func TestInjectDefinesNoVersion(t *testing.T) {
	out := injectDefines("void main() {}\n", []Define{{Name: "X", Value: "0"}})
	if !strings.HasPrefix(out, "#define X 0\n") {
		t.Fatalf("defines must lead when there is no version directive: %q", out)
	}
}

func TestInjectDefinesEmpty(t *testing.T) {
	src := "#version 460 core\n"
	if got := injectDefines(src, nil); got != src {
		t.Fatalf("no defines must be a no-op: %q", got)
	}
}
