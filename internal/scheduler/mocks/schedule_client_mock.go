package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prodsight-server/internal/models"
)

// MockScheduleClient is a mock type for the ScheduleClient type
type MockScheduleClient struct {
	mock.Mock
}

// GenerateSchedule provides a mock function with given fields: ctx, prompt
func (_m *MockScheduleClient) GenerateSchedule(ctx context.Context, prompt string) (*models.ScheduleResult, error) {
	ret := _m.Called(ctx, prompt)

	var r0 *models.ScheduleResult
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.ScheduleResult); ok {
		r0 = rf(ctx, prompt)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.ScheduleResult)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, prompt)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockScheduleClient creates a new instance of MockScheduleClient. It also
// registers a testing interface on the mock, so expectations can be asserted.
// The first argument is typically a *testing.T value.
func NewMockScheduleClient(t interface {
	mock.TestingT
	Helper()
}) *MockScheduleClient {
	m := &MockScheduleClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}
