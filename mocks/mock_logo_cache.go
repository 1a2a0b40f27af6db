package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLogoCache is a mock implementation of port.LogoCache.
type MockLogoCache struct {
	mock.Mock
}

func (m *MockLogoCache) Get(ctx context.Context, ref string) ([]byte, bool, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockLogoCache) Set(ctx context.Context, ref string, png []byte) error {
	args := m.Called(ctx, ref, png)
	return args.Error(0)
}
