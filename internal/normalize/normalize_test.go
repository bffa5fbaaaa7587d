package normalize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "What is the capital of France?", "What is the capital of France?"},
		{"escaped newline", `line one\nline two`, "line one line two"},
		{"double escaped newline", `a\n\nb`, "a b"},
		{"inline math", `\(x^{2} + y_{1}\)`, "x2 + y1"},
		{"block math", `\[ E = mc^2 \]`, "E = mc2"},
		{"bold wrapper", `\mathbf{F} = m\mathbf{a}`, "F = ma"},
		{"wrapper with space", `\text {speed} of light`, "speed of light"},
		{"boldsymbol then subscript", `\boldsymbol{v}_{0}`, "v0"},
		{"operatorname", `\operatorname{sin}^{2} x`, "sin2 x"},
		{"bare command", `a \rightarrow b`, "a b"},
		{"command leaves parens", `What is \ln(x) ?`, "What is (x)?"},
		{"empty parens removed", `Evaluate \cdot ( ) now .`, "Evaluate now."},
		{"nested command in wrapper", `\mathbf{\alpha} wins`, "wins"},
		{"whitespace collapse", "  spaced \t  out  ", "spaced out"},
		{"space before punctuation", "Hello , world !", "Hello, world!"},
		{"non-breaking space", "a\u00a0\u00a0b", "a b"},
		{"vertical tab and separators", "a\v\u2028b\u2029c\ufeff ?", "a b c?"},
		{"byte order mark at edges", "\ufeffWhat?\ufeff", "What?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_EscapedNewlineNeverSurvives(t *testing.T) {
	inputs := []string{
		`first\nsecond`,
		`\nleading`,
		`trailing\n`,
		`many\n\n\nbreaks here`,
		`mixed \( x \)\nand \text{words}`,
	}

	for _, in := range inputs {
		got := Clean(in)
		if strings.Contains(got, `\n`) {
			t.Errorf("Clean(%q) = %q still contains an escaped newline", in, got)
		}
		if strings.Contains(got, "  ") {
			t.Errorf("Clean(%q) = %q contains a double space", in, got)
		}
	}

	if got := Clean(`first\nsecond`); got != "first second" {
		t.Errorf("expected words joined by one space, got %q", got)
	}
}

func TestClean_WrapperKeepsInnerText(t *testing.T) {
	for _, cmd := range WrapperCommands {
		in := "The \\" + cmd + "{vector} field"
		want := "The vector field"
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Plain text.",
		`line one\nline two`,
		`\(x^{2} + y_{1}\)`,
		`\mathbf{F} = m\mathbf{a}`,
		`What is \ln(x) ?`,
		`Evaluate \cdot ( ) now .`,
		"Hello , world !",
		`\[ \int_{0}^{1} f(x)\, dx \]`,
		`Subject: \text{Physics}\n`,
		"{braces} stay",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
