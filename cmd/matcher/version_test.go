package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	stdout, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "matcher version: "+version+"\n", stdout)
}

func TestEmbedCorpusCommand(t *testing.T) {
	csvPath, _ := setupMatchInputs(t)
	outPath := t.TempDir() + "/vectors.json"

	stdout, err := runCLI(t, "embed-corpus",
		"--opportunities", csvPath,
		"--provider", "hashing",
		"--out", outPath,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Embedded 3 of 3 opportunities with hashing/384")
	assert.FileExists(t, outPath)
}
