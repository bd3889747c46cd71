/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/shopspring/decimal"
)

// Product is one priced SKU returned by the Pricing API
type Product struct {
	SKU        string
	Attributes map[string]string
	// USDPerUnit is the OnDemand price per Unit in USD
	USDPerUnit decimal.Decimal
	// Unit is the provider's billing unit, e.g. "Hrs" or "GB-Mo"
	Unit string
}

// DefaultPricingOperations provides Pricing API operations
type DefaultPricingOperations struct {
	client PricingAPI
}

// NewPricingOperations creates a new pricing operations wrapper
func NewPricingOperations(client PricingAPI) *DefaultPricingOperations {
	return &DefaultPricingOperations{client: client}
}

// FindProducts queries GetProducts with TERM_MATCH filters and parses each
// result's OnDemand price dimensions. Products without a parseable USD
// OnDemand price are skipped.
func (p *DefaultPricingOperations) FindProducts(ctx context.Context, serviceCode string, filters map[string]string, maxResults int32) ([]Product, error) {
	termFilters := make([]types.Filter, 0, len(filters))

	// Sort filter fields so requests are deterministic.
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		termFilters = append(termFilters, types.Filter{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String(field),
			Value: aws.String(filters[field]),
		})
	}

	result, err := p.client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     termFilters,
		MaxResults:  aws.Int32(maxResults),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing for %s: %w", serviceCode, err)
	}

	products := make([]Product, 0, len(result.PriceList))
	for _, item := range result.PriceList {
		product, err := parsePriceListItem(item)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}

	return products, nil
}

// priceListItem mirrors the slice of the PriceList JSON document we care
// about: product attributes and the OnDemand price dimensions
type priceListItem struct {
	Product struct {
		SKU        string            `json:"sku"`
		Attributes map[string]string `json:"attributes"`
	} `json:"product"`
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]struct {
				Unit         string            `json:"unit"`
				PricePerUnit map[string]string `json:"pricePerUnit"`
			} `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

func parsePriceListItem(raw string) (*Product, error) {
	var item priceListItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("failed to parse price list item: %w", err)
	}

	for _, term := range item.Terms.OnDemand {
		for _, dimension := range term.PriceDimensions {
			usd, ok := dimension.PricePerUnit["USD"]
			if !ok {
				continue
			}
			price, err := decimal.NewFromString(usd)
			if err != nil {
				continue
			}
			return &Product{
				SKU:        item.Product.SKU,
				Attributes: item.Product.Attributes,
				USDPerUnit: price,
				Unit:       dimension.Unit,
			}, nil
		}
	}

	return nil, fmt.Errorf("no USD OnDemand price in item %s", item.Product.SKU)
}
