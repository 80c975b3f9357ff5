package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/generator"
)

func TestParseParameters(t *testing.T) {
	p := generator.ParseParameters("base-package=myorg/proto,with-dependencies,grpclib,snake-case")
	assert.Equal(t, "myorg/proto", p.BasePackage)
	assert.True(t, p.WithDependencies)
	assert.True(t, p.GRPCLib)
	assert.True(t, p.SnakeCase)

	v, ok := p.Get("base-package")
	assert.True(t, ok)
	assert.Equal(t, "myorg/proto", v)

	_, ok = p.Get("absent")
	assert.False(t, ok)
}

func TestParseParametersSpaceSeparated(t *testing.T) {
	p := generator.ParseParameters("base-package=myorg/proto with-dependencies grpclib")
	assert.Equal(t, "myorg/proto", p.BasePackage)
	assert.True(t, p.WithDependencies)
	assert.True(t, p.GRPCLib)
	assert.False(t, p.SnakeCase)
}

func TestParseParametersMixedCommaAndSpace(t *testing.T) {
	p := generator.ParseParameters("base-package=myorg/proto, with-dependencies snake-case")
	assert.Equal(t, "myorg/proto", p.BasePackage)
	assert.True(t, p.WithDependencies)
	assert.True(t, p.SnakeCase)
}

func TestParseParametersEmpty(t *testing.T) {
	p := generator.ParseParameters("")
	assert.False(t, p.GRPCLib)
	assert.Empty(t, p.BasePackage)
}

func TestCheckCompilerVersion(t *testing.T) {
	require.NoError(t, generator.CheckCompilerVersion(3, 0, 0))
	require.NoError(t, generator.CheckCompilerVersion(4, 1, 2))
	assert.Error(t, generator.CheckCompilerVersion(2, 9, 9))
}
