package cli

import "testing"

func TestSuggest(t *testing.T) {
	names := []string{"cpython@3.11.4", "cpython-dbg@3.11.4", "pypy@3.9.0"}

	tests := []struct {
		query string
		want  string
	}{
		{"pypy@3.10.0", "pypy@3.9.0"},
		{"cpy@3", "cpython@3.11.4"},
	}

	for _, tt := range tests {
		got := suggest(tt.query, names)
		if len(got) == 0 || got[0] != tt.want {
			t.Errorf("suggest(%q) = %v, want first %q", tt.query, got, tt.want)
		}
	}

	if got := suggest("graalpy@1.0", names); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestJoinComma(t *testing.T) {
	tests := []struct {
		input []string
		want  string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b", "c"}, "a, b, c"},
	}

	for _, tt := range tests {
		if got := joinComma(tt.input); got != tt.want {
			t.Errorf("joinComma(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
