/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package template loads the on-disk template catalog and exposes each
// template's parameter contract and resource declarations as an immutable
// schema.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stackpilot/stackpilot/internal/model"
)

var (
	// ErrTemplateNotFound indicates the requested template does not exist
	// in the catalog
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplateSchema indicates a catalog document that does not
	// conform to the schema contract
	ErrInvalidTemplateSchema = errors.New("invalid template schema")
)

// Resolver resolves template identifiers into schemas
type Resolver interface {
	Resolve(name string) (*model.TemplateSchema, error)
	List() ([]*model.TemplateSchema, error)
}

// DirCatalog implements Resolver over a directory of YAML documents,
// one <name>.yaml per template
type DirCatalog struct {
	dir string
}

// NewDirCatalog creates a catalog rooted at the given directory
func NewDirCatalog(dir string) *DirCatalog {
	return &DirCatalog{dir: dir}
}

// catalogDocument is the raw YAML structure of one catalog entry
type catalogDocument struct {
	Description string           `yaml:"description"`
	Parameters  []parameterEntry `yaml:"parameters"`
	Resources   []resourceEntry  `yaml:"resources"`
	Body        string           `yaml:"body"`
	BodyFile    string           `yaml:"body_file"`
}

type parameterEntry struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	Default       *string  `yaml:"default"`
	Required      bool     `yaml:"required"`
	AllowedValues []string `yaml:"allowed_values"`
	Description   string   `yaml:"description"`
}

type resourceEntry struct {
	LogicalID      string            `yaml:"logical_id"`
	Kind           string            `yaml:"kind"`
	CostAttributes map[string]string `yaml:"cost_attributes"`
}

// Resolve loads and validates the schema for a single template
func (c *DirCatalog) Resolve(name string) (*model.TemplateSchema, error) {
	path := filepath.Join(c.dir, name+".yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplateSchema, name, err)
	}

	schema, err := c.buildSchema(name, &doc)
	if err != nil {
		return nil, err
	}

	return schema, nil
}

// List loads every template in the catalog, sorted by name
func (c *DirCatalog) List() ([]*model.TemplateSchema, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory %s: %w", c.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)

	schemas := make([]*model.TemplateSchema, 0, len(names))
	for _, name := range names {
		schema, err := c.Resolve(name)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}

	return schemas, nil
}

// buildSchema validates the raw document and converts it into the model form
func (c *DirCatalog) buildSchema(name string, doc *catalogDocument) (*model.TemplateSchema, error) {
	schema := &model.TemplateSchema{
		Name:        name,
		Description: doc.Description,
	}

	seen := make(map[string]bool)
	for _, entry := range doc.Parameters {
		spec, err := buildParameterSpec(name, entry)
		if err != nil {
			return nil, err
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate parameter %q", ErrInvalidTemplateSchema, name, spec.Name)
		}
		seen[spec.Name] = true
		schema.Parameters = append(schema.Parameters, *spec)
	}

	for _, entry := range doc.Resources {
		if entry.LogicalID == "" || entry.Kind == "" {
			return nil, fmt.Errorf("%w: %s: resource declarations require logical_id and kind", ErrInvalidTemplateSchema, name)
		}
		schema.Resources = append(schema.Resources, model.ResourceDeclaration{
			LogicalID:      entry.LogicalID,
			Kind:           entry.Kind,
			CostAttributes: entry.CostAttributes,
		})
	}

	body, err := c.loadBody(name, doc)
	if err != nil {
		return nil, err
	}
	schema.Body = body

	return schema, nil
}

// loadBody returns the template body, reading body_file relative to the
// catalog directory when an inline body is not provided
func (c *DirCatalog) loadBody(name string, doc *catalogDocument) (string, error) {
	if doc.Body != "" {
		return doc.Body, nil
	}
	if doc.BodyFile == "" {
		return "", fmt.Errorf("%w: %s: one of body or body_file is required", ErrInvalidTemplateSchema, name)
	}

	content, err := os.ReadFile(filepath.Join(c.dir, doc.BodyFile))
	if err != nil {
		return "", fmt.Errorf("%w: %s: body_file %s: %v", ErrInvalidTemplateSchema, name, doc.BodyFile, err)
	}
	return string(content), nil
}

// buildParameterSpec validates one parameter entry
func buildParameterSpec(template string, entry parameterEntry) (*model.ParameterSpec, error) {
	if entry.Name == "" {
		return nil, fmt.Errorf("%w: %s: parameter without a name", ErrInvalidTemplateSchema, template)
	}

	var paramType model.ParameterType
	switch entry.Type {
	case "string", "":
		paramType = model.ParameterTypeString
	case "integer":
		paramType = model.ParameterTypeInteger
	case "enum":
		paramType = model.ParameterTypeEnum
	default:
		return nil, fmt.Errorf("%w: %s: parameter %q has unknown type %q", ErrInvalidTemplateSchema, template, entry.Name, entry.Type)
	}

	if paramType == model.ParameterTypeEnum && len(entry.AllowedValues) == 0 {
		return nil, fmt.Errorf("%w: %s: enum parameter %q requires allowed_values", ErrInvalidTemplateSchema, template, entry.Name)
	}

	spec := &model.ParameterSpec{
		Name:          entry.Name,
		Type:          paramType,
		Default:       entry.Default,
		Required:      entry.Required,
		AllowedValues: entry.AllowedValues,
		Description:   entry.Description,
	}

	// A declared default must itself satisfy the parameter contract.
	if spec.HasDefault() {
		switch paramType {
		case model.ParameterTypeInteger:
			if _, err := strconv.ParseInt(*spec.Default, 10, 64); err != nil {
				return nil, fmt.Errorf("%w: %s: parameter %q default %q is not an integer", ErrInvalidTemplateSchema, template, entry.Name, *spec.Default)
			}
		case model.ParameterTypeEnum:
			if !spec.Allows(*spec.Default) {
				return nil, fmt.Errorf("%w: %s: parameter %q default %q is not an allowed value", ErrInvalidTemplateSchema, template, entry.Name, *spec.Default)
			}
		}
	}

	return spec, nil
}
