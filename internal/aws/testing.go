/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockControlPlaneOperations implements ControlPlaneOperations for testing
type MockControlPlaneOperations struct {
	mock.Mock
}

func (m *MockControlPlaneOperations) CreateStack(ctx context.Context, input StackChangeInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockControlPlaneOperations) UpdateStack(ctx context.Context, input StackChangeInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockControlPlaneOperations) DeleteStack(ctx context.Context, stackName string) error {
	args := m.Called(ctx, stackName)
	return args.Error(0)
}

func (m *MockControlPlaneOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	args := m.Called(ctx, stackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stack), args.Error(1)
}

func (m *MockControlPlaneOperations) ListStacks(ctx context.Context) ([]*Stack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Stack), args.Error(1)
}

func (m *MockControlPlaneOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	args := m.Called(ctx, stackName)
	return args.Bool(0), args.Error(1)
}

func (m *MockControlPlaneOperations) ValidateTemplate(ctx context.Context, templateBody string) error {
	args := m.Called(ctx, templateBody)
	return args.Error(0)
}

func (m *MockControlPlaneOperations) DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error) {
	args := m.Called(ctx, stackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StackEvent), args.Error(1)
}

// MockPricingOperations implements PricingOperations for testing
type MockPricingOperations struct {
	mock.Mock
}

func (m *MockPricingOperations) FindProducts(ctx context.Context, serviceCode string, filters map[string]string, maxResults int32) ([]Product, error) {
	args := m.Called(ctx, serviceCode, filters, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}
