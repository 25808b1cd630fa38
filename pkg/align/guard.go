package align

import "errors"

// ErrEmptyDataset means alignment left no usable rows.
var ErrEmptyDataset = errors.New("no aligned rows: check tide, wave, and temperature sources")

// Validate passes a non-empty table through unchanged and rejects an empty
// one. It does not judge whether the values are physically plausible.
func Validate(t Table) (Table, error) {
	if len(t) == 0 {
		return nil, ErrEmptyDataset
	}
	return t, nil
}
