package layout

import (
	"testing"

	"github.com/matzehuels/shelfview/pkg/errors"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "shelf", want: Shelf()},
		{in: "", want: Shelf()},
		{in: "grid", want: Grid(0)},
		{in: "grid[3]", want: Grid(3)},
		{in: " Page ", want: Page(0, Vertical)},
		{in: "page[2]", want: Page(2, Vertical)},
		{in: "page[1,horizontal]", want: Page(1, Horizontal)},
		{in: "page[1, vertical]", want: Page(1, Vertical)},
		{in: "shelf[1]", wantErr: true},
		{in: "grid[1,2]", wantErr: true},
		{in: "grid[-1]", wantErr: true},
		{in: "grid[x]", wantErr: true},
		{in: "page[0,diagonal]", wantErr: true},
		{in: "page[0", wantErr: true},
		{in: "carousel", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if code := errors.GetCode(err); code != errors.ErrCodeInvalidMode && code != errors.ErrCodeInvalidInput {
					t.Errorf("ParsePolicy(%q) code = %v", tt.in, code)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPolicyStringRoundTrip(t *testing.T) {
	for _, p := range []Policy{Shelf(), Grid(4), Page(2, Horizontal), Page(0, Vertical)} {
		got, err := ParsePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePolicy(%q) = %+v, %v; want %+v", p.String(), got, err, p)
		}
	}
}
