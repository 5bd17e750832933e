package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
)

func TestDocentDir_ConfigFlag(t *testing.T) {
	dir, err := docentDir([]string{"ask", "--config", "/tmp/docent-test"})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/docent-test", dir)
}

func TestDocentDir_ConfigFlagEquals(t *testing.T) {
	dir, err := docentDir([]string{"--config=/tmp/docent-test", "status"})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/docent-test", dir)
}

func TestDocentDir_Default(t *testing.T) {
	dir, err := docentDir([]string{"status"})

	require.NoError(t, err)
	assert.Equal(t, ".docent", filepath.Base(dir))
}

func TestDocentDir_FlagWithoutValue(t *testing.T) {
	// cobra reports the missing value later; wiring still needs a
	// directory in the meantime.
	dir, err := docentDir([]string{"--config"})

	require.NoError(t, err)
	assert.Equal(t, ".docent", filepath.Base(dir))
}

func TestBuildPipeline_DefaultConfig(t *testing.T) {
	pipeline, err := buildPipeline(domain.DefaultPipelineConfig())

	require.NoError(t, err)
	assert.Equal(t, 2, pipeline.Len())
}

func TestBuildPipeline_UnknownProcessor(t *testing.T) {
	_, err := buildPipeline(domain.PipelineConfig{Processors: []string{"sentiment"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentiment")
}
