/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cost

import "github.com/shopspring/decimal"

// Static fallback prices, us-east-1 on-demand rates. These back every
// resource kind stackpilot supports so an estimate can always be produced
// when the Pricing API is unavailable.

// EC2 Linux on-demand, USD per hour
var staticEC2Hourly = map[string]decimal.Decimal{
	"t3.micro":  decimal.RequireFromString("0.0104"),
	"t3.small":  decimal.RequireFromString("0.0208"),
	"t3.medium": decimal.RequireFromString("0.0416"),
	"t3.large":  decimal.RequireFromString("0.0832"),
	"m5.large":  decimal.RequireFromString("0.096"),
	"c5.large":  decimal.RequireFromString("0.085"),
}

// RDS MySQL single-AZ on-demand, USD per hour
var staticRDSHourly = map[string]decimal.Decimal{
	"db.t3.micro":  decimal.RequireFromString("0.017"),
	"db.t3.small":  decimal.RequireFromString("0.034"),
	"db.t3.medium": decimal.RequireFromString("0.068"),
	"db.t3.large":  decimal.RequireFromString("0.136"),
	"db.r5.large":  decimal.RequireFromString("0.291"),
}

// S3 Standard storage, USD per GB-month
var staticS3GBMonth = decimal.RequireFromString("0.023")

// Lambda duration rate, USD per GB-second
var staticLambdaGBSecond = decimal.RequireFromString("0.0000166667")

// Lambda request rate, USD per million invocations
var staticLambdaPerMillionRequests = decimal.RequireFromString("0.20")

// fallbackEC2 returns the static hourly rate for an instance type
func fallbackEC2(instanceType string) (decimal.Decimal, error) {
	price, ok := staticEC2Hourly[instanceType]
	if !ok {
		return decimal.Zero, &MissingFallbackPriceError{Kind: KindEC2Instance, Key: instanceType}
	}
	return price, nil
}

// fallbackRDS returns the static hourly rate for a DB instance class
func fallbackRDS(instanceClass string) (decimal.Decimal, error) {
	price, ok := staticRDSHourly[instanceClass]
	if !ok {
		return decimal.Zero, &MissingFallbackPriceError{Kind: KindRDSInstance, Key: instanceClass}
	}
	return price, nil
}
