package utils

import (
	"testing"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IMG_0001.jpg", "IMG_0001.jpg"},
		{".hidden", "_hidden"},
		{"our day (1).jpeg", "our_day__1_.jpeg"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"café.png", "caf_.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SafeFileName(tt.in); got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPathSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"our day (1).jpeg", "our day (1).jpeg"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"tab\there\x00", "tab_here_"},
		{"café.png", "café.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PathSafeName(tt.in); got != tt.want {
				t.Errorf("PathSafeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
