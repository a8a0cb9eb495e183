package server

import "testing"

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		src  string
		line string
		want bool
	}{
		{``, "anything\n", true},
		{`line contains "ERR"`, "an ERR here\n", true},
		{`line contains "ERR"`, "all good\n", false},
		{`host == "10.0.0.1"`, "x\n", true},
		{`port > 6000`, "x\n", false},
		{`client startsWith "10.0.0.1:"`, "x\n", true},
		{`line endsWith "\r\n"`, "crlf\r\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := NewFilter(tt.src)
			if err != nil {
				t.Fatalf("NewFilter() error = %v", err)
			}
			got, err := f.Match("10.0.0.1:5000", "10.0.0.1", 5000, []byte(tt.line))
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.line, got, tt.want)
			}
			if f.String() != tt.src {
				t.Errorf("String() = %q, want %q", f.String(), tt.src)
			}
		})
	}
}

func TestNewFilter_Invalid(t *testing.T) {
	for _, src := range []string{`line ==`, `unknownVar == 1`, `"just a string"`} {
		if _, err := NewFilter(src); err == nil {
			t.Errorf("NewFilter(%q) expected error", src)
		}
	}
}
