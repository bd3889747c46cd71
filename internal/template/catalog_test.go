/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/model"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const webAppDoc = `description: EC2 web application
parameters:
  - name: InstanceType
    type: enum
    default: t3.micro
    allowed_values: [t3.micro, t3.small]
  - name: Environment
    type: string
    required: true
  - name: StorageGB
    type: integer
    default: "20"
resources:
  - logical_id: WebServer
    kind: AWS::EC2::Instance
    cost_attributes:
      instance_type: param:InstanceType
  - logical_id: Assets
    kind: AWS::S3::Bucket
    cost_attributes:
      storage_gb: param:StorageGB
body: |
  AWSTemplateFormatVersion: '2010-09-09'
`

func TestResolveLoadsSchema(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "web-app.yaml", webAppDoc)

	schema, err := NewDirCatalog(dir).Resolve("web-app")

	require.NoError(t, err)
	assert.Equal(t, "web-app", schema.Name)
	assert.Equal(t, "EC2 web application", schema.Description)
	require.Len(t, schema.Parameters, 3)

	instanceType, ok := schema.Spec("InstanceType")
	require.True(t, ok)
	assert.Equal(t, model.ParameterTypeEnum, instanceType.Type)
	assert.True(t, instanceType.HasDefault())
	assert.Equal(t, "t3.micro", *instanceType.Default)

	require.Len(t, schema.Resources, 2)
	assert.Equal(t, "AWS::EC2::Instance", schema.Resources[0].Kind)
	assert.Equal(t, "param:InstanceType", schema.Resources[0].CostAttributes["instance_type"])
	assert.Contains(t, schema.Body, "AWSTemplateFormatVersion")
}

func TestResolveUnknownTemplate(t *testing.T) {
	_, err := NewDirCatalog(t.TempDir()).Resolve("missing")

	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestResolveBodyFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "web-app.cfn.yaml", "AWSTemplateFormatVersion: '2010-09-09'\n")
	writeTemplate(t, dir, "web-app.yaml", "description: external body\nbody_file: web-app.cfn.yaml\n")

	schema, err := NewDirCatalog(dir).Resolve("web-app")

	require.NoError(t, err)
	assert.Contains(t, schema.Body, "AWSTemplateFormatVersion")
}

func TestResolveInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"unknown parameter type",
			"parameters:\n  - name: Size\n    type: float\nbody: x\n",
		},
		{
			"enum without allowed values",
			"parameters:\n  - name: Size\n    type: enum\nbody: x\n",
		},
		{
			"non-integer default",
			"parameters:\n  - name: Size\n    type: integer\n    default: big\nbody: x\n",
		},
		{
			"enum default outside allowed values",
			"parameters:\n  - name: Size\n    type: enum\n    default: xl\n    allowed_values: [s, m]\nbody: x\n",
		},
		{
			"duplicate parameter",
			"parameters:\n  - name: Size\n  - name: Size\nbody: x\n",
		},
		{
			"parameter without name",
			"parameters:\n  - type: string\nbody: x\n",
		},
		{
			"resource without kind",
			"resources:\n  - logical_id: Thing\nbody: x\n",
		},
		{
			"missing body",
			"description: no body\n",
		},
		{
			"not yaml",
			"{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTemplate(t, dir, "broken.yaml", tt.doc)

			_, err := NewDirCatalog(dir).Resolve("broken")

			assert.ErrorIs(t, err, ErrInvalidTemplateSchema)
		})
	}
}

func TestListReturnsSortedSchemas(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "web-app.yaml", webAppDoc)
	writeTemplate(t, dir, "data-lake.yaml", "description: storage\nbody: x\n")
	writeTemplate(t, dir, "notes.txt", "not a template")

	schemas, err := NewDirCatalog(dir).List()

	require.NoError(t, err)
	require.Len(t, schemas, 2)
	assert.Equal(t, "data-lake", schemas[0].Name)
	assert.Equal(t, "web-app", schemas[1].Name)
}

func TestMockResolverImplementsResolver(t *testing.T) {
	var _ Resolver = (*MockResolver)(nil)
	var _ Resolver = (*DirCatalog)(nil)
}
