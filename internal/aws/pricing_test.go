/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPricingAPI mocks the raw SDK surface
type mockPricingAPI struct {
	mock.Mock
}

func (m *mockPricingAPI) GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.GetProductsOutput), args.Error(1)
}

const t3MicroPriceItem = `{
	"product": {
		"sku": "ABCDEF123456",
		"attributes": {"instanceType": "t3.micro", "operatingSystem": "Linux"}
	},
	"terms": {
		"OnDemand": {
			"ABCDEF123456.JRTCKXETXF": {
				"priceDimensions": {
					"ABCDEF123456.JRTCKXETXF.6YS6EN2CT7": {
						"unit": "Hrs",
						"pricePerUnit": {"USD": "0.0104000000"}
					}
				}
			}
		}
	}
}`

func TestFindProductsParsesOnDemandPrices(t *testing.T) {
	api := &mockPricingAPI{}
	api.On("GetProducts", mock.Anything, mock.MatchedBy(func(input *pricing.GetProductsInput) bool {
		if awssdk.ToString(input.ServiceCode) != "AmazonEC2" {
			return false
		}
		// Filters are sorted by field for deterministic requests.
		if len(input.Filters) != 2 {
			return false
		}
		first, second := input.Filters[0], input.Filters[1]
		return first.Type == types.FilterTypeTermMatch &&
			awssdk.ToString(first.Field) == "instanceType" &&
			awssdk.ToString(second.Field) == "operatingSystem"
	})).Return(&pricing.GetProductsOutput{PriceList: []string{t3MicroPriceItem}}, nil)

	ops := NewPricingOperations(api)
	products, err := ops.FindProducts(context.Background(), "AmazonEC2", map[string]string{
		"operatingSystem": "Linux",
		"instanceType":    "t3.micro",
	}, 2)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "ABCDEF123456", products[0].SKU)
	assert.Equal(t, "Hrs", products[0].Unit)
	assert.True(t, products[0].USDPerUnit.Equal(decimal.RequireFromString("0.0104")))
	assert.Equal(t, "t3.micro", products[0].Attributes["instanceType"])
	api.AssertExpectations(t)
}

func TestFindProductsSkipsUnparseableItems(t *testing.T) {
	api := &mockPricingAPI{}
	api.On("GetProducts", mock.Anything, mock.Anything).Return(&pricing.GetProductsOutput{
		PriceList: []string{"not json", `{"product":{"sku":"NOPRICE"},"terms":{}}`, t3MicroPriceItem},
	}, nil)

	ops := NewPricingOperations(api)
	products, err := ops.FindProducts(context.Background(), "AmazonEC2", nil, 5)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "ABCDEF123456", products[0].SKU)
}

func TestFindProductsPropagatesAPIErrors(t *testing.T) {
	api := &mockPricingAPI{}
	api.On("GetProducts", mock.Anything, mock.Anything).Return(nil, errors.New("endpoint unreachable"))

	ops := NewPricingOperations(api)
	_, err := ops.FindProducts(context.Background(), "AmazonEC2", nil, 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query pricing for AmazonEC2")
}

func TestParsePriceListItemWithoutUSDPrice(t *testing.T) {
	_, err := parsePriceListItem(`{
		"product": {"sku": "EURONLY"},
		"terms": {"OnDemand": {"t": {"priceDimensions": {"d": {"unit": "Hrs", "pricePerUnit": {"EUR": "0.01"}}}}}}
	}`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no USD OnDemand price")
}
