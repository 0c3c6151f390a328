package intcode

import (
	"errors"
	"strings"
	"testing"
)

func TestReaderInput(t *testing.T) {
	in := ReaderInput(strings.NewReader("1\n\n  -7 \n9223372036854775807\n"))

	for _, want := range []int64{1, -7, 9223372036854775807} {
		got, err := in()
		if err != nil {
			t.Fatalf("input failed: %v", err)
		}
		if got != want {
			t.Errorf("input = %d, want %d", got, want)
		}
	}
	if _, err := in(); !errors.Is(err, ErrInputExhausted) {
		t.Errorf("input after end = %v, want ErrInputExhausted", err)
	}
}

func TestReaderInputBadLine(t *testing.T) {
	in := ReaderInput(strings.NewReader("4\nfive\n"))
	if _, err := in(); err != nil {
		t.Fatalf("input failed: %v", err)
	}
	_, err := in()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("input = %v, want error mentioning line 2", err)
	}
}

func TestWriterOutput(t *testing.T) {
	tests := []struct {
		sep  string
		want string
	}{
		{"", "12-30"},
		{"\n", "12\n-3\n0\n"},
		{",", "12,-3,0,"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		out := WriterOutput(&sb, tt.sep)
		for _, v := range []int64{12, -3, 0} {
			if err := out(v); err != nil {
				t.Fatalf("output failed: %v", err)
			}
		}
		if sb.String() != tt.want {
			t.Errorf("sep %q: output = %q, want %q", tt.sep, sb.String(), tt.want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterOutputError(t *testing.T) {
	err := WriterOutput(failingWriter{}, "\n")(1)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("output = %v, want wrapped write error", err)
	}
}

func TestSliceInput(t *testing.T) {
	in := SliceInput(3, 4)
	for _, want := range []int64{3, 4} {
		if got, err := in(); err != nil || got != want {
			t.Errorf("input = %d, %v, want %d", got, err, want)
		}
	}
	if _, err := in(); !errors.Is(err, ErrInputExhausted) {
		t.Errorf("input after end = %v, want ErrInputExhausted", err)
	}
}

func TestCollectOutput(t *testing.T) {
	var got []int64
	out := CollectOutput(&got)
	out(5)
	out(-5)
	if len(got) != 2 || got[0] != 5 || got[1] != -5 {
		t.Errorf("collected %v, want [5 -5]", got)
	}
}

func TestNoIO(t *testing.T) {
	p := New([]int64{3, 0, 99})
	err := p.RunWithIO(NoInput, NoOutput)
	expectError(t, err, KindInput, 0)

	p = New([]int64{104, 1, 99})
	err = p.RunWithIO(NoInput, NoOutput)
	expectError(t, err, KindOutput, 0)
}
