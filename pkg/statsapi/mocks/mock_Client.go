// Package mocks provides test doubles for the statsapi client.
package mocks

import (
	"context"

	statsapi "github.com/sells-group/statcompare/pkg/statsapi"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// ListEntities provides a mock function with given fields: ctx
func (_m *MockClient) ListEntities(ctx context.Context) ([]statsapi.EntityID, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListEntities")
	}

	var r0 []statsapi.EntityID
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]statsapi.EntityID, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []statsapi.EntityID); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]statsapi.EntityID)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RawStats provides a mock function with given fields: ctx, entity
func (_m *MockClient) RawStats(ctx context.Context, entity statsapi.EntityID) (*statsapi.Snapshot, error) {
	ret := _m.Called(ctx, entity)

	if len(ret) == 0 {
		panic("no return value specified for RawStats")
	}

	var r0 *statsapi.Snapshot
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID) (*statsapi.Snapshot, error)); ok {
		return rf(ctx, entity)
	}
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID) *statsapi.Snapshot); ok {
		r0 = rf(ctx, entity)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*statsapi.Snapshot)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, statsapi.EntityID) error); ok {
		r1 = rf(ctx, entity)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CompareStats provides a mock function with given fields: ctx, a, b
func (_m *MockClient) CompareStats(ctx context.Context, a statsapi.EntityID, b statsapi.EntityID) (*statsapi.Comparison, error) {
	ret := _m.Called(ctx, a, b)

	if len(ret) == 0 {
		panic("no return value specified for CompareStats")
	}

	var r0 *statsapi.Comparison
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID, statsapi.EntityID) (*statsapi.Comparison, error)); ok {
		return rf(ctx, a, b)
	}
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID, statsapi.EntityID) *statsapi.Comparison); ok {
		r0 = rf(ctx, a, b)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*statsapi.Comparison)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, statsapi.EntityID, statsapi.EntityID) error); ok {
		r1 = rf(ctx, a, b)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CompareLegacy provides a mock function with given fields: ctx, a, b
func (_m *MockClient) CompareLegacy(ctx context.Context, a statsapi.EntityID, b statsapi.EntityID) (*statsapi.Comparison, error) {
	ret := _m.Called(ctx, a, b)

	if len(ret) == 0 {
		panic("no return value specified for CompareLegacy")
	}

	var r0 *statsapi.Comparison
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID, statsapi.EntityID) (*statsapi.Comparison, error)); ok {
		return rf(ctx, a, b)
	}
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID, statsapi.EntityID) *statsapi.Comparison); ok {
		r0 = rf(ctx, a, b)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*statsapi.Comparison)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, statsapi.EntityID, statsapi.EntityID) error); ok {
		r1 = rf(ctx, a, b)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RadarStats provides a mock function with given fields: ctx, entity
func (_m *MockClient) RadarStats(ctx context.Context, entity statsapi.EntityID) (*statsapi.Snapshot, error) {
	ret := _m.Called(ctx, entity)

	if len(ret) == 0 {
		panic("no return value specified for RadarStats")
	}

	var r0 *statsapi.Snapshot
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID) (*statsapi.Snapshot, error)); ok {
		return rf(ctx, entity)
	}
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID) *statsapi.Snapshot); ok {
		r0 = rf(ctx, entity)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*statsapi.Snapshot)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, statsapi.EntityID) error); ok {
		r1 = rf(ctx, entity)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// EfficiencyStats provides a mock function with given fields: ctx, entity
func (_m *MockClient) EfficiencyStats(ctx context.Context, entity statsapi.EntityID) ([]statsapi.EfficiencyPoint, error) {
	ret := _m.Called(ctx, entity)

	if len(ret) == 0 {
		panic("no return value specified for EfficiencyStats")
	}

	var r0 []statsapi.EfficiencyPoint
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID) ([]statsapi.EfficiencyPoint, error)); ok {
		return rf(ctx, entity)
	}
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.EntityID) []statsapi.EfficiencyPoint); ok {
		r0 = rf(ctx, entity)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]statsapi.EfficiencyPoint)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, statsapi.EntityID) error); ok {
		r1 = rf(ctx, entity)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ChatTurn provides a mock function with given fields: ctx, req
func (_m *MockClient) ChatTurn(ctx context.Context, req statsapi.ChatRequest) (*statsapi.ChatReply, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for ChatTurn")
	}

	var r0 *statsapi.ChatReply
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.ChatRequest) (*statsapi.ChatReply, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, statsapi.ChatRequest) *statsapi.ChatReply); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*statsapi.ChatReply)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, statsapi.ChatRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
