package search

import "github.com/stretchr/testify/mock"

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: fields, query.
func (_m *MockProvider) Match(fields []string, query string) bool {
	ret := _m.Called(fields, query)
	if rf, ok := ret.Get(0).(func([]string, string) bool); ok {
		return rf(fields, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()
	if rf, ok := ret.Get(0).(func() string); ok {
		return rf()
	}
	return ret.String(0)
}

var _ Provider = (*MockProvider)(nil)
