package align

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	if _, err := Validate(Table{}); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("got %v for empty table, want ErrEmptyDataset", err)
	}
	if _, err := Validate(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("got %v for nil table, want ErrEmptyDataset", err)
	}

	in := Table{{Time: t0, TideHeight: 1, WaveHeight: 0.5, Temperature: 19, WaveTime: t0}}
	got, err := Validate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("table changed (-want,+got):\n%s", diff)
	}
}
