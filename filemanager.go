package classroom

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
)

// FileManager exposes CRUD over files inside a single base directory.
// Every path a caller supplies is resolved against the base directory
// and rejected if it escapes it, so the manager can never touch the
// rest of the filesystem.
type FileManager struct {
	baseDir string
	logger  Logger
}

// FileInfo is the wire projection of a managed file.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	IsDir      bool      `json:"is_dir"`
}

func NewFileManager(baseDir string) (*FileManager, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, InternalError(err, "failed to resolve base directory")
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, InternalError(err, "failed to create base directory")
	}

	return &FileManager{baseDir: abs, logger: defLogger{}}, nil
}

func (m *FileManager) WithLogger(logger Logger) *FileManager {
	m.logger = logger
	return m
}

// BaseDir returns the resolved managed directory.
func (m *FileManager) BaseDir() string {
	return m.baseDir
}

// List returns the entries directly under the base directory.
func (m *FileManager) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return nil, InternalError(err, "failed to list files")
	}

	out := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, FileInfo{
			Name:       entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
			IsDir:      entry.IsDir(),
		})
	}

	return out, nil
}

// Read returns the contents of the named file.
func (m *FileManager) Read(name string) ([]byte, error) {
	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errFileNotFound(name)
		}
		return nil, InternalError(err, "failed to read file")
	}

	return data, nil
}

// Create writes a new file. An existing file with the same name is an
// error; Update is the overwrite path.
func (m *FileManager) Create(name string, content []byte) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return errors.New("file already exists", errors.CategoryConflict).
			WithTextCode("FILE_EXISTS").
			WithCode(errors.CodeConflict).
			WithMetadata(map[string]any{"name": name})
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return InternalError(err, "failed to create file")
	}

	m.logger.Info("file created: %s", name)
	return nil
}

// Update overwrites an existing file; a missing file is an error.
func (m *FileManager) Update(name string, content []byte) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errFileNotFound(name)
		}
		return InternalError(err, "failed to stat file")
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return InternalError(err, "failed to update file")
	}

	m.logger.Info("file updated: %s", name)
	return nil
}

// Delete removes the named file.
func (m *FileManager) Delete(name string) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errFileNotFound(name)
		}
		return InternalError(err, "failed to delete file")
	}

	m.logger.Info("file deleted: %s", name)
	return nil
}

// resolve joins the name against the base directory and rejects any
// path that lands outside it.
func (m *FileManager) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("file name is required", errors.CategoryBadInput).
			WithTextCode("MISSING_FILENAME").
			WithCode(errors.CodeBadRequest)
	}

	path := filepath.Join(m.baseDir, filepath.Clean("/"+name))

	rel, err := filepath.Rel(m.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("path escapes the managed directory", errors.CategoryBadInput).
			WithTextCode("INVALID_PATH").
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"name": name})
	}

	return path, nil
}

func errFileNotFound(name string) error {
	return errors.New("file not found", errors.CategoryNotFound).
		WithTextCode("FILE_NOT_FOUND").
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"name": name})
}
