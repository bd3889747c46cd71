/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"github.com/stretchr/testify/mock"

	"github.com/stackpilot/stackpilot/internal/model"
)

// MockResolver implements Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(name string) (*model.TemplateSchema, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TemplateSchema), args.Error(1)
}

func (m *MockResolver) List() ([]*model.TemplateSchema, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TemplateSchema), args.Error(1)
}
