/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cost

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/model"
)

// Resource kinds with pricing support
const (
	KindEC2Instance    = "AWS::EC2::Instance"
	KindS3Bucket       = "AWS::S3::Bucket"
	KindLambdaFunction = "AWS::Lambda::Function"
	KindRDSInstance    = "AWS::RDS::DBInstance"
)

// hoursPerMonth is the full-time usage assumption for compute and database
// resources
var hoursPerMonth = decimal.NewFromInt(730)

// Baseline call volume assumed for invocation-priced resources:
// 1M invocations per month at 100ms average duration.
var (
	lambdaBaselineInvocations = decimal.NewFromInt(1_000_000)
	lambdaBaselineDurationMS  = decimal.NewFromInt(100)
)

// Estimator produces cost projections
type Estimator interface {
	Estimate(ctx context.Context, schema *model.TemplateSchema, params *model.ParameterSet) (*Estimate, error)
}

// Engine implements Estimator with a live Pricing API path and a static
// fallback path
type Engine struct {
	pricing       aws.PricingOperations
	logger        *zap.Logger
	lookupTimeout time.Duration
	currency      string
}

// NewEngine creates a cost engine. The lookup timeout bounds each live
// pricing call independently of any deployment timeout.
func NewEngine(pricing aws.PricingOperations, logger *zap.Logger, lookupTimeout time.Duration) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		pricing:       pricing,
		logger:        logger,
		lookupTimeout: lookupTimeout,
		currency:      "USD",
	}
}

// Estimate produces one line item per resource declaration. A live-lookup
// failure never surfaces to the caller; the static table guarantees a
// result, labelled accordingly.
func (e *Engine) Estimate(ctx context.Context, schema *model.TemplateSchema, params *model.ParameterSet) (*Estimate, error) {
	estimate := &Estimate{
		Template: schema.Name,
		Currency: e.currency,
	}

	for _, decl := range schema.Resources {
		item, assumptions, err := e.estimateResource(ctx, &decl, params)
		if err != nil {
			return nil, err
		}
		estimate.Items = append(estimate.Items, *item)
		estimate.Assumptions = append(estimate.Assumptions, assumptions...)
		estimate.TotalMonthly = estimate.TotalMonthly.Add(item.Monthly)
	}

	estimate.Source = overallSource(estimate.Items)
	return estimate, nil
}

// estimateResource prices a single resource declaration
func (e *Engine) estimateResource(ctx context.Context, decl *model.ResourceDeclaration, params *model.ParameterSet) (*LineItem, []string, error) {
	switch decl.Kind {
	case KindEC2Instance:
		return e.estimateEC2(ctx, decl, params)
	case KindS3Bucket:
		return e.estimateS3(ctx, decl, params)
	case KindLambdaFunction:
		return e.estimateLambda(ctx, decl, params)
	case KindRDSInstance:
		return e.estimateRDS(ctx, decl, params)
	default:
		return nil, nil, &MissingFallbackPriceError{Kind: decl.Kind, Key: decl.LogicalID}
	}
}

func (e *Engine) estimateEC2(ctx context.Context, decl *model.ResourceDeclaration, params *model.ParameterSet) (*LineItem, []string, error) {
	instanceType := e.attribute(decl, params, "instance_type", "t3.micro")

	path := e.resolvePrice(ctx, decl, "AmazonEC2", map[string]string{
		"instanceType":    instanceType,
		"operatingSystem": "Linux",
		"tenancy":         "Shared",
		"preInstalledSw":  "NA",
		"capacitystatus":  "Used",
	})
	if path == nil {
		price, err := fallbackEC2(instanceType)
		if err != nil {
			return nil, nil, err
		}
		path = &pricePath{Price: price, Source: SourceStaticFallback}
	}

	item := &LineItem{
		LogicalID: decl.LogicalID,
		Kind:      decl.Kind,
		UnitPrice: path.Price,
		Unit:      UnitHour,
		Quantity:  hoursPerMonth,
		Monthly:   path.Price.Mul(hoursPerMonth),
		Source:    path.Source,
		Detail:    fmt.Sprintf("instance type %s", instanceType),
	}
	assumption := fmt.Sprintf("%s: %s running full time (%s hours/month, us-east-1 Linux on-demand)", decl.LogicalID, instanceType, hoursPerMonth)
	return item, []string{assumption}, nil
}

func (e *Engine) estimateRDS(ctx context.Context, decl *model.ResourceDeclaration, params *model.ParameterSet) (*LineItem, []string, error) {
	instanceClass := e.attribute(decl, params, "instance_class", "db.t3.micro")

	path := e.resolvePrice(ctx, decl, "AmazonRDS", map[string]string{
		"instanceType":     instanceClass,
		"databaseEngine":   "MySQL",
		"deploymentOption": "Single-AZ",
	})
	if path == nil {
		price, err := fallbackRDS(instanceClass)
		if err != nil {
			return nil, nil, err
		}
		path = &pricePath{Price: price, Source: SourceStaticFallback}
	}

	item := &LineItem{
		LogicalID: decl.LogicalID,
		Kind:      decl.Kind,
		UnitPrice: path.Price,
		Unit:      UnitHour,
		Quantity:  hoursPerMonth,
		Monthly:   path.Price.Mul(hoursPerMonth),
		Source:    path.Source,
		Detail:    fmt.Sprintf("instance class %s", instanceClass),
	}
	assumption := fmt.Sprintf("%s: %s MySQL single-AZ running full time (%s hours/month)", decl.LogicalID, instanceClass, hoursPerMonth)
	return item, []string{assumption}, nil
}

func (e *Engine) estimateS3(ctx context.Context, decl *model.ResourceDeclaration, params *model.ParameterSet) (*LineItem, []string, error) {
	sizeGB := e.integerAttribute(decl, params, "storage_gb", 1)

	path := e.resolvePrice(ctx, decl, "AmazonS3", map[string]string{
		"location":     "US East (N. Virginia)",
		"storageClass": "General Purpose",
		"volumeType":   "Standard",
	})
	if path == nil {
		path = &pricePath{Price: staticS3GBMonth, Source: SourceStaticFallback}
	}

	quantity := decimal.NewFromInt(sizeGB)
	item := &LineItem{
		LogicalID: decl.LogicalID,
		Kind:      decl.Kind,
		UnitPrice: path.Price,
		Unit:      UnitGBMonth,
		Quantity:  quantity,
		Monthly:   path.Price.Mul(quantity),
		Source:    path.Source,
		Detail:    fmt.Sprintf("%d GB standard storage", sizeGB),
	}
	assumption := fmt.Sprintf("%s: %d GB S3 Standard storage, request charges excluded", decl.LogicalID, sizeGB)
	return item, []string{assumption}, nil
}

func (e *Engine) estimateLambda(ctx context.Context, decl *model.ResourceDeclaration, params *model.ParameterSet) (*LineItem, []string, error) {
	memoryMB := e.integerAttribute(decl, params, "memory_mb", 128)

	path := e.resolvePrice(ctx, decl, "AWSLambda", map[string]string{
		"location": "US East (N. Virginia)",
		"group":    "AWS-Lambda-Duration",
	})
	if path == nil {
		path = &pricePath{Price: staticLambdaGBSecond, Source: SourceStaticFallback}
	}

	// GB-seconds at the documented baseline call volume.
	gbSeconds := decimal.NewFromInt(memoryMB).
		Div(decimal.NewFromInt(1024)).
		Mul(lambdaBaselineDurationMS).
		Div(decimal.NewFromInt(1000)).
		Mul(lambdaBaselineInvocations)

	requestCharge := lambdaBaselineInvocations.
		Div(decimal.NewFromInt(1_000_000)).
		Mul(staticLambdaPerMillionRequests)

	item := &LineItem{
		LogicalID: decl.LogicalID,
		Kind:      decl.Kind,
		UnitPrice: path.Price,
		Unit:      UnitGBSecond,
		Quantity:  gbSeconds,
		Monthly:   path.Price.Mul(gbSeconds).Add(requestCharge),
		Source:    path.Source,
		Detail:    fmt.Sprintf("%d MB memory", memoryMB),
	}
	assumption := fmt.Sprintf("%s: baseline %s invocations/month at %s ms average duration, %d MB memory", decl.LogicalID, lambdaBaselineInvocations, lambdaBaselineDurationMS, memoryMB)
	return item, []string{assumption}, nil
}

// resolvePrice attempts the live path and returns nil when the caller must
// fall back. A live result is only accepted when the lookup matched exactly
// one product: zero or multiple matches make the figure untrustworthy.
func (e *Engine) resolvePrice(ctx context.Context, decl *model.ResourceDeclaration, serviceCode string, filters map[string]string) *pricePath {
	if e.pricing == nil {
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	products, err := e.pricing.FindProducts(lookupCtx, serviceCode, filters, 2)
	if err != nil {
		e.logger.Warn("live pricing lookup failed, using static fallback",
			zap.String("resource", decl.LogicalID),
			zap.String("service", serviceCode),
			zap.Error(err))
		return nil
	}
	if len(products) != 1 {
		e.logger.Debug("live pricing lookup not unique, using static fallback",
			zap.String("resource", decl.LogicalID),
			zap.String("service", serviceCode),
			zap.Int("matches", len(products)))
		return nil
	}

	return &pricePath{Price: products[0].USDPerUnit, Source: SourceLive}
}

// attribute resolves a cost attribute to a literal or bound parameter value
func (e *Engine) attribute(decl *model.ResourceDeclaration, params *model.ParameterSet, key, fallback string) string {
	raw, ok := decl.CostAttributes[key]
	if !ok {
		return fallback
	}
	if name, isRef := paramRef(raw); isRef {
		if value, bound := params.Value(name); bound {
			return value.Raw
		}
		return fallback
	}
	return raw
}

// integerAttribute resolves a numeric cost attribute
func (e *Engine) integerAttribute(decl *model.ResourceDeclaration, params *model.ParameterSet, key string, fallback int64) int64 {
	raw, ok := decl.CostAttributes[key]
	if !ok {
		return fallback
	}
	if name, isRef := paramRef(raw); isRef {
		if value, bound := params.Value(name); bound {
			if n, isInt := value.Int(); isInt {
				return n
			}
		}
		return fallback
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return parsed.IntPart()
}

// paramRef recognises the "param:<name>" form in cost attributes
func paramRef(raw string) (string, bool) {
	const prefix = "param:"
	if len(raw) > len(prefix) && raw[:len(prefix)] == prefix {
		return raw[len(prefix):], true
	}
	return "", false
}

// overallSource derives the estimate-level tag from its line items
func overallSource(items []LineItem) Source {
	live, fallback := 0, 0
	for _, item := range items {
		switch item.Source {
		case SourceLive:
			live++
		case SourceStaticFallback:
			fallback++
		}
	}
	switch {
	case fallback == 0:
		return SourceLive
	case live == 0:
		return SourceStaticFallback
	default:
		return SourceMixed
	}
}
