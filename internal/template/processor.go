/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Processor defines the interface for processing template bodies before
// submission to the control plane
type Processor interface {
	Process(body string, variables map[string]interface{}) (string, error)
}

// SprigProcessor implements Processor using Go's text/template with Sprig
// functions
type SprigProcessor struct{}

// NewSprigProcessor creates a new template body processor
func NewSprigProcessor() *SprigProcessor {
	return &SprigProcessor{}
}

// Process renders a template body with the provided variables
func (p *SprigProcessor) Process(body string, variables map[string]interface{}) (string, error) {
	tmpl, err := template.New("stack").
		Funcs(sprig.TxtFuncMap()).
		Parse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse template body: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to render template body: %w", err)
	}

	return buf.String(), nil
}
