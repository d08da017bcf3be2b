package tui

import (
	"context"

	"stackshift/internal/model"
)

// mockSource implements source.Source for testing.
type mockSource struct {
	FetchFn  func(ctx context.Context) (*model.Portfolio, error)
	OriginFn func() string
}

func (m *mockSource) Fetch(ctx context.Context) (*model.Portfolio, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx)
	}
	return makeFixturePortfolio(), nil
}

func (m *mockSource) Origin() string {
	if m.OriginFn != nil {
		return m.OriginFn()
	}
	return "mock"
}
