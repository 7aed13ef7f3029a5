package redbus

import (
	"errors"
	"testing"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "ISO", input: "2025-12-24", want: "24-Dec-2025"},
		{name: "DD-MM-YYYY", input: "24-12-2025", want: "24-Dec-2025"},
		{name: "DD/MM/YYYY", input: "24/12/2025", want: "24-Dec-2025"},
		{name: "single-digit day zero padded", input: "2025-03-05", want: "05-Mar-2025"},
		{name: "already provider formatted", input: "24-Dec-2025", want: "24-Dec-2025"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "three-letter middle but not a month", input: "24-Zzz-2025", wantErr: true},
		{name: "US order rejected", input: "12/24/2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("FormatDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatDate(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
