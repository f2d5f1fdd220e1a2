package filestorage

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func newStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(filepath.Join(t.TempDir(), "avatars"))
	require.NoError(t, err)
	return ls
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewLocalStorageCreatesAbsoluteRoot(t *testing.T) {
	ls := newStorage(t)

	assert.True(t, filepath.IsAbs(ls.BasePath()))
	info, err := os.Stat(ls.BasePath())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStageAndPublish(t *testing.T) {
	ls := newStorage(t)
	payload := bytes.Repeat([]byte("wand"), 700) // larger than one transfer buffer

	var captured bytes.Buffer
	staged, err := ls.Stage(bytes.NewReader(payload), &captured)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), staged.Size())
	assert.Equal(t, payload, captured.Bytes())

	published, err := staged.Publish("7.png")
	require.NoError(t, err)
	require.NoError(t, published.Commit())
	require.NoError(t, staged.Discard())
	info := published.Info()
	assert.Equal(t, filepath.Join(ls.BasePath(), "7.png"), info.Path)
	assert.Equal(t, int64(len(payload)), info.FileSize)

	onDisk, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)
	assert.Equal(t, []string{"7.png"}, listDir(t, ls.BasePath()), "temporary file must be gone")
}

func publish(t *testing.T, ls *LocalStorage, name, content string) PublishedFile {
	t.Helper()
	staged, err := ls.Stage(strings.NewReader(content), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = staged.Discard() })
	published, err := staged.Publish(name)
	require.NoError(t, err)
	return published
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPublishReplacesExistingFile(t *testing.T) {
	ls := newStorage(t)
	require.NoError(t, publish(t, ls, "3.jpg", "old").Commit())

	second := publish(t, ls, "3.jpg", "new avatar")
	assert.Equal(t, "new avatar", readFile(t, second.Info().Path))

	require.NoError(t, second.Commit())
	assert.Equal(t, "new avatar", readFile(t, second.Info().Path))
}

func TestRevertRestoresPreviousFile(t *testing.T) {
	ls := newStorage(t)
	require.NoError(t, publish(t, ls, "3.jpg", "old").Commit())

	second := publish(t, ls, "3.jpg", "new avatar")
	require.NoError(t, second.Revert())

	assert.Equal(t, "old", readFile(t, second.Info().Path))
}

func TestRevertWithoutPreviousFileRemovesPublished(t *testing.T) {
	ls := newStorage(t)

	published := publish(t, ls, "4.png", "only")
	require.NoError(t, published.Revert())

	_, err := os.Stat(published.Info().Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRevertKeepsNewerFile(t *testing.T) {
	ls := newStorage(t)
	require.NoError(t, publish(t, ls, "5.png", "old").Commit())

	stale := publish(t, ls, "5.png", "stale")
	newer := publish(t, ls, "5.png", "newer")

	require.NoError(t, stale.Revert())
	assert.Equal(t, "newer", readFile(t, newer.Info().Path))
	require.NoError(t, newer.Commit())
	assert.Equal(t, "newer", readFile(t, newer.Info().Path))
}

func TestCommitRemovesOtherExtensions(t *testing.T) {
	ls := newStorage(t)
	require.NoError(t, publish(t, ls, "1.png", "png").Commit())
	require.NoError(t, publish(t, ls, "10.png", "other student").Commit())

	require.NoError(t, publish(t, ls, "1.jpg", "jpeg").Commit())

	names := listDir(t, ls.BasePath())
	assert.Contains(t, names, "1.jpg")
	assert.Contains(t, names, "10.png")
	assert.NotContains(t, names, "1.png")
}

func TestCreateExclusiveFailsWhenTargetExists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("b"), 0o644))

	err := createExclusive(src, dst)
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestStageRemovesTempFileOnReadFailure(t *testing.T) {
	ls := newStorage(t)

	_, err := ls.Stage(failingReader{}, nil)
	assert.Error(t, err)
	assert.Empty(t, listDir(t, ls.BasePath()))
}

func TestStageRecreatesRemovedRoot(t *testing.T) {
	ls := newStorage(t)
	require.NoError(t, os.RemoveAll(ls.BasePath()))

	staged, err := ls.Stage(strings.NewReader("x"), nil)
	require.NoError(t, err)
	assert.NoError(t, staged.Discard())
	assert.Empty(t, listDir(t, ls.BasePath()))
}

func TestOpen(t *testing.T) {
	ls := newStorage(t)
	staged, err := ls.Stage(strings.NewReader("bytes"), nil)
	require.NoError(t, err)
	published, err := staged.Publish("9.gif")
	require.NoError(t, err)
	require.NoError(t, published.Commit())

	rc, err := ls.Open(published.Info().Path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	_, err = ls.Open(filepath.Join(ls.BasePath(), "..", "secret"))
	assert.True(t, errors.Is(err, fs.ErrPermission))
}
