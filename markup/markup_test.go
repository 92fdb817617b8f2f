package markup

import "testing"

func TestClean_Example(t *testing.T) {
	in := `<div data-foo="x" data-testid="y" onclick="f()" style="color:red" class="">text</div>`
	want := `<div data-testid="y">text</div>`
	if got := Clean(in); got != want {
		t.Fatalf("Clean:\ngot  %q\nwant %q", got, want)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\"): got %q", got)
	}
	if got := Clean("  \n\t "); got != "" {
		t.Errorf("Clean(whitespace): got %q", got)
	}
}

func TestClean_NoMatchesIsNoop(t *testing.T) {
	in := `<a href="/x" class="btn">Go</a>`
	if got := Clean(in); got != in {
		t.Errorf("Clean: got %q, want %q", got, in)
	}
}

func TestClean_WhitespaceCollapsed(t *testing.T) {
	in := "\n  <ul>\n    <li>a</li>\n\n    <li>b</li>\n  </ul>\n"
	want := "<ul> <li>a</li> <li>b</li> </ul>"
	if got := Clean(in); got != want {
		t.Errorf("Clean: got %q, want %q", got, want)
	}
}

func TestPasses_Individually(t *testing.T) {
	tests := []struct {
		pass string
		in   string
		want string
	}{
		{"data-attributes", `<p data-id="1" data-testid="p">x</p>`, `<p data-testid="p">x</p>`},
		{"data-attributes", `<p DATA-Track-Id="z">x</p>`, `<p>x</p>`},
		{"data-attributes", `<p data-testid-extra="k">x</p>`, `<p data-testid-extra="k">x</p>`},
		{"data-attributes", `<p data-snatch-highlight="true">x</p>`, `<p>x</p>`},
		{"event-handlers", `<b onclick="a()" onMouseOver="b()" onblur="c()">x</b>`, `<b>x</b>`},
		{"event-handlers", `<b onchange="a()">x</b>`, `<b onchange="a()">x</b>`},
		{"inline-style", `<i style="color: red; margin: 0">x</i>`, `<i>x</i>`},
		{"empty-class", `<i class="">x</i><i class="a">y</i>`, `<i>x</i><i class="a">y</i>`},
		{"whitespace", "a \n\t b", "a b"},
	}
	for _, tt := range tests {
		p := passByName(t, tt.pass)
		if got := p.Apply(tt.in); got != tt.want {
			t.Errorf("%s(%q): got %q, want %q", tt.pass, tt.in, got, tt.want)
		}
	}
}

func TestPasses_Order(t *testing.T) {
	want := []string{"data-attributes", "event-handlers", "inline-style", "empty-class", "whitespace"}
	if len(Passes) != len(want) {
		t.Fatalf("passes: got %d, want %d", len(Passes), len(want))
	}
	for i, name := range want {
		if Passes[i].Name != name {
			t.Errorf("pass[%d]: got %q, want %q", i, Passes[i].Name, name)
		}
	}
}

func passByName(t *testing.T, name string) Pass {
	t.Helper()
	for _, p := range Passes {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no pass named %q", name)
	return Pass{}
}
