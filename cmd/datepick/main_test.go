package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"datepick"},
			want: []string{"datepick"},
		},
		{
			name: "date first token",
			in:   []string{"datepick", "2025-01-05"},
			want: []string{"datepick", "parse", "2025-01-05"},
		},
		{
			name: "datetime after value flag",
			in:   []string{"datepick", "--locale", "nb", "2025-01-05T09:30"},
			want: []string{"datepick", "--locale", "nb", "parse", "2025-01-05T09:30"},
		},
		{
			name: "date after equals flag",
			in:   []string{"datepick", "--format=edn", "2025-01-05"},
			want: []string{"datepick", "--format=edn", "parse", "2025-01-05"},
		},
		{
			name: "date after bool flag",
			in:   []string{"datepick", "--pretty", "2025-01-05"},
			want: []string{"datepick", "--pretty", "parse", "2025-01-05"},
		},
		{
			name: "date after double dash",
			in:   []string{"datepick", "--dir", "./tmp", "--", "2025-01-05"},
			want: []string{"datepick", "--dir", "./tmp", "parse", "--", "2025-01-05"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"datepick", "parse", "2025-01-05"},
			want: []string{"datepick", "parse", "2025-01-05"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"datepick", "wat"},
			want: []string{"datepick", "wat"},
		},
		{
			name: "short number not rewritten",
			in:   []string{"datepick", "2025"},
			want: []string{"datepick", "2025"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectParseArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectParseArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
