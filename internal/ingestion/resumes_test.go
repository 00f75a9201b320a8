package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadResumes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bob.txt", "Backend   engineer\r\nGo and Postgres\n")
	writeFile(t, dir, "alice.md", "# Alice\n\n- Python\n")
	writeFile(t, dir, "blank.txt", "  \n\n ")
	writeFile(t, dir, "photo.png", "binary")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	resumes, info, err := LoadResumes(dir)
	require.NoError(t, err)
	require.Len(t, resumes, 2)

	assert.Equal(t, "alice", resumes[0].Name)
	assert.Equal(t, "# Alice\n\n- Python", resumes[0].Text)
	assert.Equal(t, "bob", resumes[1].Name)
	assert.Equal(t, "Backend engineer\nGo and Postgres", resumes[1].Text)

	assert.Equal(t, KindResumes, info.Kind)
	assert.Equal(t, 2, info.Records)
}

func TestLoadResumes_EmptyDir(t *testing.T) {
	resumes, info, err := LoadResumes(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, resumes)
	assert.Equal(t, 0, info.Records)
}

func TestLoadResumes_MissingDir(t *testing.T) {
	_, _, err := LoadResumes(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
