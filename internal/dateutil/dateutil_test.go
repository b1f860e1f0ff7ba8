package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "year", format: "YYYY", want: "2006"},
		{name: "short year", format: "YY", want: "06"},
		{name: "full month", format: "MMMM", want: "January"},
		{name: "short month", format: "MMM", want: "Jan"},
		{name: "padded month", format: "MM", want: "01"},
		{name: "month", format: "M", want: "1"},
		{name: "padded day", format: "DD", want: "02"},
		{name: "day", format: "D", want: "2"},
		{name: "weekday", format: "dddd", want: "Monday"},
		{name: "short weekday", format: "ddd", want: "Mon"},
		{name: "default display", format: DefaultDisplayFormat, want: "January 02, 2006"},
		{name: "iso", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "preset long", format: "long", want: "January 02, 2006"},
		{name: "preset case-insensitive", format: "US", want: "01/02/2006"},
		{name: "preset short", format: "short", want: "Jan 2, 2006"},
		{name: "literal separators", format: "YYYY/MM/DD", want: "2006/01/02"},
		{name: "D in text is a token", format: "Date: YYYY", want: "2ate: 2006"},
		{name: "brackets keep literal", format: "[Date]: YYYY", want: "Date: 2006"},
		{name: "brackets keep tokens", format: "[YYYY]-MM", want: "YYYY-01"},
		{name: "empty brackets", format: "YYYY[]MM", want: "200601"},
		{name: "weekday with literal", format: "dddd[,] D MMMM", want: "Monday, 2 January"},
		{name: "unclosed bracket", format: "[Date YYYY", wantErr: ErrInvalidDateFormat},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("-", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "at max length", format: strings.Repeat("-", MaxDateFormatLength), want: strings.Repeat("-", MaxDateFormatLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolvePostDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty uses now", value: "", want: "2026-03-15"},
		{name: "auto uses now", value: "auto", want: "2026-03-15"},
		{name: "AUTO uses now", value: "AUTO", want: "2026-03-15"},
		{name: "explicit date", value: "2025-12-31", want: "2025-12-31"},
		{name: "surrounding space trimmed", value: " 2025-01-02 ", want: "2025-01-02"},
		{name: "wrong layout", value: "31/12/2025", wantErr: ErrInvalidDate},
		{name: "impossible date", value: "2025-02-30", wantErr: ErrInvalidDate},
		{name: "free text", value: "yesterday", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolvePostDate(tt.value, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolvePostDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePostDate(%q) unexpected error: %v", tt.value, err)
			}
			if s := got.Format(ISOLayout); s != tt.want {
				t.Errorf("ResolvePostDate(%q) = %s, want %s", tt.value, s, tt.want)
			}
		})
	}
}

func TestFormatDisplayDate(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{DefaultDisplayFormat, "March 05, 2026"},
		{"european", "05/03/2026"},
		{"dddd D MMM", "Thursday 5 Mar"},
	}

	for _, tt := range tests {
		got, err := FormatDisplayDate(date, tt.format)
		if err != nil {
			t.Fatalf("FormatDisplayDate(%q) error = %v", tt.format, err)
		}
		if got != tt.want {
			t.Errorf("FormatDisplayDate(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}

	if _, err := FormatDisplayDate(date, "[oops"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("error = %v, want ErrInvalidDateFormat", err)
	}
}
