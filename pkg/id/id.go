// Package id issues the time-sortable identifiers used for trades and accounts.
package id

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID stamped with t. IDs minted for the same millisecond
// stay lexicographically increasing, so imported trades keyed by their
// recorded creation time sort in journal order.
func NewAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t.UTC()), ulid.DefaultEntropy()).String()
}

// Time extracts the timestamp encoded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
