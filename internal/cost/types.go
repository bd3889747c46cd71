/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package cost turns a template schema plus a bound parameter set into a
// recurring monthly cost projection. A live Pricing API lookup is preferred;
// a static price table guarantees an estimate is always produced.
package cost

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Source tags which pricing path produced a figure
type Source string

const (
	SourceLive           Source = "LIVE"
	SourceStaticFallback Source = "STATIC_FALLBACK"
	SourceMixed          Source = "MIXED"
)

// Recurrence units used by line items
const (
	UnitHour     = "hour"
	UnitGBMonth  = "GB-month"
	UnitGBSecond = "GB-second"
)

// LineItem is the projected recurring cost of one resource declaration
type LineItem struct {
	LogicalID string
	Kind      string

	// UnitPrice is the provider rate per Unit
	UnitPrice decimal.Decimal
	Unit      string

	// Quantity is the per-month usage multiplier derived from parameters
	Quantity decimal.Decimal

	// Monthly is the projected amount per month
	Monthly decimal.Decimal

	Source Source
	Detail string
}

// Estimate is the full cost projection for one template instantiation
type Estimate struct {
	Template     string
	Items        []LineItem
	TotalMonthly decimal.Decimal
	Currency     string
	Source       Source
	Assumptions  []string
}

// MissingFallbackPriceError indicates a gap in the static price table. The
// table must cover every resource kind stackpilot supports, so this is a
// programming error rather than a user-facing condition.
type MissingFallbackPriceError struct {
	Kind string
	Key  string
}

func (e *MissingFallbackPriceError) Error() string {
	return fmt.Sprintf("no fallback price for resource kind %s (key %q)", e.Kind, e.Key)
}

// pricePath is the explicit two-path result of a unit-price resolution:
// the live quote when the lookup succeeded, otherwise the static fallback.
// Every call site labels its line item from the Source carried here.
type pricePath struct {
	Price  decimal.Decimal
	Source Source
}
