package dynlib

import (
	"runtime"
	"strconv"
	"strings"
	"testing"
)

func TestCString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"simple ascii", "strlen"},
		{"path", "/usr/lib/libjdwp.so"},
		{"windows path", "C:\\jdk\\bin\\dt_socket.dll"},
		{"unicode", "bibliothèque"},
		{"long string", strings.Repeat("a", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ptr := CString(tt.input)

			if len(b) != len(tt.input)+1 {
				t.Errorf("expected byte slice length %d, got %d", len(tt.input)+1, len(b))
			}
			if b[len(b)-1] != 0 {
				t.Error("expected null terminator at end of byte slice")
			}
			if ptr == 0 {
				t.Error("expected non-null pointer")
			}
			if string(b[:len(b)-1]) != tt.input {
				t.Errorf("expected content %q, got %q", tt.input, string(b[:len(b)-1]))
			}
		})
	}
}

func TestGoString(t *testing.T) {
	tests := []string{
		"",
		"a",
		"Can't find dependent libraries",
		"bibliothèque",
		strings.Repeat("y", 1000),
		"embedded\x00nul",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			want := input
			if idx := strings.IndexByte(input, 0); idx >= 0 {
				want = input[:idx]
			}

			b, ptr := CString(input)
			got := GoString(ptr)
			runtime.KeepAlive(b)

			if got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestGoStringNullPointer(t *testing.T) {
	if got := GoString(0); got != "" {
		t.Errorf("expected empty string for null pointer, got %q", got)
	}
}

func TestBufString(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"nil", nil, ""},
		{"leading nul", []byte{0, 'a'}, ""},
		{"terminated", []byte("libjdwp.so\x00garbage"), "libjdwp.so"},
		{"unterminated", []byte("abc"), "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BufString(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func BenchmarkGoString(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			s, ptr := CString(strings.Repeat("b", size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = GoString(ptr)
			}
			runtime.KeepAlive(s)
		})
	}
}
