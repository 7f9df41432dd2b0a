package testutil

import (
	"context"

	"github.com/helia-ci/sable"
	"github.com/pkg/errors"
)

// StaticFetcher is a sable.Fetcher that returns a fixed payload and records
// the windows it was asked to fetch.
type StaticFetcher struct {
	Payload []byte
	Windows []sable.FetchWindow
}

// Fetch records the window and returns the configured payload.
func (f *StaticFetcher) Fetch(ctx context.Context, window sable.FetchWindow) ([]byte, error) {
	f.Windows = append(f.Windows, window)
	return f.Payload, nil
}

// FailingFetcher is a sable.Fetcher that always fails.
type FailingFetcher struct{}

// Fetch returns an error without recording anything.
func (f *FailingFetcher) Fetch(ctx context.Context, window sable.FetchWindow) ([]byte, error) {
	return nil, errors.New("fetch failed")
}
