package filestorage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/school/internal/pkg/logger"
)

const (
	// BufferSize is the transfer buffer used when copying uploads to disk
	BufferSize = 1024

	dirPerm  = 0o755
	filePerm = 0o644

	tempSuffix   = ".upload"
	backupSuffix = ".bak"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // Absolute root directory where files are stored
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage rooted at basePath, creating it if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if basePath == "" {
		return nil, errors.New("storage path is required")
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path %s: %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, dirPerm); err != nil {
		logger.Error().Err(err).Str("path", absPath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", absPath, err)
	}
	logger.Info().Str("path", absPath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: absPath}, nil
}

// BasePath returns the absolute storage root
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// PathFor returns the absolute path for name inside the storage root
func (ls *LocalStorage) PathFor(name string) string {
	return filepath.Join(ls.basePath, filepath.Base(name))
}

// Stage copies r into a uniquely named temporary file next to the final location
func (ls *LocalStorage) Stage(r io.Reader, capture io.Writer) (StagedFile, error) {
	// The root may have been removed since startup.
	if err := os.MkdirAll(ls.basePath, dirPerm); err != nil {
		logger.Error().Err(err).Str("path", ls.basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	tempPath := filepath.Join(ls.basePath, "."+uuid.New().String()+tempSuffix)
	dst, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		logger.Error().Err(err).Str("path", tempPath).Msg("Failed to create temporary file")
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	size, copyErr := copyBuffered(dst, r, capture)
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		logger.Error().Err(err).Str("path", tempPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Debug().Str("path", tempPath).Int64("size", size).Msg("Upload staged")
	return &stagedFile{storage: ls, tempPath: tempPath, size: size}, nil
}

// Open opens a stored file for reading. Paths outside the storage root are rejected.
func (ls *LocalStorage) Open(path string) (io.ReadCloser, error) {
	rel, err := filepath.Rel(ls.basePath, path)
	if err != nil || rel != filepath.Base(path) {
		return nil, fmt.Errorf("path %s is outside storage root: %w", path, fs.ErrPermission)
	}
	return os.Open(path)
}

func copyBuffered(dst io.Writer, src io.Reader, capture io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(dst, BufferSize)

	var w io.Writer = bw
	if capture != nil {
		w = io.MultiWriter(bw, capture)
	}

	n, err := io.CopyBuffer(w, src, make([]byte, BufferSize))
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

type stagedFile struct {
	storage  *LocalStorage
	tempPath string
	size     int64
}

func (sf *stagedFile) Size() int64 {
	return sf.size
}

func (sf *stagedFile) Publish(name string) (PublishedFile, error) {
	finalPath := sf.storage.PathFor(name)
	backupPath := filepath.Join(sf.storage.basePath, "."+filepath.Base(name)+"."+uuid.New().String()+backupSuffix)

	hasBackup := true
	if err := os.Rename(finalPath, backupPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Error().Err(err).Str("path", finalPath).Msg("Failed to move previous file aside")
			return nil, fmt.Errorf("failed to move previous file aside: %w", err)
		}
		hasBackup = false
	}

	pf := &publishedFile{
		storage:    sf.storage,
		finalPath:  finalPath,
		backupPath: backupPath,
		hasBackup:  hasBackup,
		size:       sf.size,
	}

	if err := createExclusive(sf.tempPath, finalPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			logger.Warn().Str("path", finalPath).Msg("File was recreated concurrently")
		} else {
			logger.Error().Err(err).Str("path", finalPath).Msg("Failed to publish file")
		}
		_ = pf.restoreBackup()
		return nil, fmt.Errorf("failed to publish file %s: %w", finalPath, err)
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		_ = os.Remove(finalPath)
		_ = pf.restoreBackup()
		return nil, fmt.Errorf("failed to stat published file %s: %w", finalPath, err)
	}
	pf.published = info

	logger.Debug().Str("path", finalPath).Int64("size", sf.size).Msg("File published")
	return pf, nil
}

func (sf *stagedFile) Discard() error {
	if err := os.Remove(sf.tempPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Str("path", sf.tempPath).Msg("Failed to remove temporary file")
		return err
	}
	return nil
}

// createExclusive makes src visible at dst, failing if dst already exists. A hard link
// is atomic; filesystems without link support fall back to an O_EXCL copy.
func createExclusive(src, dst string) error {
	err := os.Link(src, dst)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}

	_, copyErr := copyBuffered(out, in, nil)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

type publishedFile struct {
	storage    *LocalStorage
	finalPath  string
	backupPath string
	hasBackup  bool
	size       int64
	published  os.FileInfo
}

func (pf *publishedFile) Info() FileInfo {
	return FileInfo{Path: pf.finalPath, FileSize: pf.size}
}

func (pf *publishedFile) Commit() error {
	var errs []error
	if pf.hasBackup {
		if err := os.Remove(pf.backupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
		pf.hasBackup = false
	}

	base := filepath.Base(pf.finalPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	siblings, err := filepath.Glob(filepath.Join(pf.storage.basePath, globEscape(stem)+".*"))
	if err != nil {
		errs = append(errs, err)
	}
	for _, path := range siblings {
		if path == pf.finalPath {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		logger.Debug().Str("path", path).Msg("Removed stale file")
	}

	if err := errors.Join(errs...); err != nil {
		logger.Warn().Err(err).Str("path", pf.finalPath).Msg("Failed to clean up previous files")
		return err
	}
	logger.Info().Str("path", pf.finalPath).Int64("size", pf.size).Msg("File saved successfully")
	return nil
}

func (pf *publishedFile) Revert() error {
	current, err := os.Stat(pf.finalPath)
	switch {
	case err == nil && os.SameFile(current, pf.published):
		if err := os.Remove(pf.finalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Error().Err(err).Str("path", pf.finalPath).Msg("Failed to remove published file")
			return err
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}

	return pf.restoreBackup()
}

// restoreBackup puts the previous version back unless a newer file took its place
func (pf *publishedFile) restoreBackup() error {
	if !pf.hasBackup {
		return nil
	}
	pf.hasBackup = false

	err := createExclusive(pf.backupPath, pf.finalPath)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		logger.Error().Err(err).Str("path", pf.finalPath).Msg("Failed to restore previous file")
		return err
	}
	if removeErr := os.Remove(pf.backupPath); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
		return removeErr
	}
	logger.Info().Str("path", pf.finalPath).Msg("Previous file restored")
	return nil
}

func globEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`).Replace(s)
}
