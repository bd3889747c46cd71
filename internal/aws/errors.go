/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// IsStackNotFound reports whether the error indicates the stack doesn't
// exist. CloudFormation reports this as a ValidationError rather than a
// dedicated code.
func IsStackNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorCode() == "ValidationError" && strings.Contains(apiErr.ErrorMessage(), "does not exist") {
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "does not exist")
}

// IsAlreadyExists reports whether the error indicates a stack with the same
// name already exists
func IsAlreadyExists(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "AlreadyExistsException"
	}
	return false
}

// IsTransient classifies communication failures that are safe to retry:
// timeouts, connection errors and 5xx-class responses. Terminal states
// reported by the control plane are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Caller-initiated cancellation is not retryable.
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var responseErr *smithyhttp.ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.HTTPStatusCode() >= 500
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "Throttling", "ThrottlingException", "RequestLimitExceeded",
			"ServiceUnavailable", "InternalFailure":
			return true
		}
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
