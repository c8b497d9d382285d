package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"writer-server/internal/llm"
)

// MockLLMClient is a mock type for the llm.Client type
type MockLLMClient struct {
	mock.Mock
}

// GenerateText provides a mock function with given fields: ctx, systemPrompt, userPrompt, params
func (_m *MockLLMClient) GenerateText(ctx context.Context, systemPrompt string, userPrompt string, params llm.Params) (string, llm.UsageInfo, error) {
	ret := _m.Called(ctx, systemPrompt, userPrompt, params)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string, llm.Params) string); ok {
		r0 = rf(ctx, systemPrompt, userPrompt, params)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 llm.UsageInfo
	if rf, ok := ret.Get(1).(func(context.Context, string, string, llm.Params) llm.UsageInfo); ok {
		r1 = rf(ctx, systemPrompt, userPrompt, params)
	} else {
		if ret.Get(1) != nil {
			r1 = ret.Get(1).(llm.UsageInfo)
		}
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, string, string, llm.Params) error); ok {
		r2 = rf(ctx, systemPrompt, userPrompt, params)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewMockLLMClient creates a new instance of MockLLMClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLLMClient(t interface {
	mock.TestingT
	Helper()
}) *MockLLMClient {
	m := &MockLLMClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ llm.Client = (*MockLLMClient)(nil)
