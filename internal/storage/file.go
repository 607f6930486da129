// Package storage persists saved portfolios behind interfaces.PortfolioStore.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bobmcallan/rentvest/internal/common"
	"github.com/bobmcallan/rentvest/internal/interfaces"
	"github.com/bobmcallan/rentvest/internal/models"
)

// FileStore keeps one indented JSON file per portfolio with optional versioning.
type FileStore struct {
	dir      string
	versions int
	maxSaved int
	logger   *common.Logger
	mu       sync.Mutex
}

// NewFileStore creates a FileStore under <path>/portfolios.
func NewFileStore(logger *common.Logger, config *common.StorageConfig) (*FileStore, error) {
	versions := config.Versions
	if versions < 0 {
		versions = 0
	}

	fs := &FileStore{
		dir:      filepath.Join(config.Path, "portfolios"),
		versions: versions,
		maxSaved: config.MaxSaved,
		logger:   logger,
	}
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", fs.dir, err)
	}

	logger.Debug().Str("path", fs.dir).Int("versions", versions).Int("max_saved", fs.maxSaved).Msg("FileStore opened")
	return fs, nil
}

// sanitizeKey makes a key safe for use as a filename.
// Replaces /, \, : with _ and collapses ".." to "_" to prevent path traversal.
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func (fs *FileStore) filePath(id string) string {
	return filepath.Join(fs.dir, sanitizeKey(id)+".json")
}

// Save writes the portfolio atomically, refusing new portfolios past the cap.
func (fs *FileStore) Save(ctx context.Context, portfolio *models.Portfolio) error {
	if portfolio == nil || portfolio.ID == "" {
		return fmt.Errorf("%w: portfolio id is required", interfaces.ErrInvalidInput)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	target := fs.filePath(portfolio.ID)
	if _, err := os.Stat(target); os.IsNotExist(err) && fs.maxSaved > 0 {
		ids, err := fs.listIDs()
		if err != nil {
			return err
		}
		if len(ids) >= fs.maxSaved {
			return fmt.Errorf("cannot save '%s' (%d of %d): %w", portfolio.Name, len(ids), fs.maxSaved, interfaces.ErrCapacityReached)
		}
	}

	data, err := json.MarshalIndent(portfolio, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	data = append(data, '\n')

	if fs.versions > 0 {
		fs.rotateVersions(target)
	}
	return writeAtomic(fs.dir, target, data)
}

// writeAtomic writes to a temp file in dir then renames it over target.
func writeAtomic(dir, target string, data []byte) error {
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// rotateVersions shifts existing versions up and moves current to v1.
// v{N} -> deleted, v{N-1} -> v{N}, ..., current -> v1
func (fs *FileStore) rotateVersions(target string) {
	os.Remove(fmt.Sprintf("%s.v%d", target, fs.versions))

	for i := fs.versions; i > 1; i-- {
		os.Rename(fmt.Sprintf("%s.v%d", target, i-1), fmt.Sprintf("%s.v%d", target, i))
	}

	if _, err := os.Stat(target); err == nil {
		os.Rename(target, target+".v1")
	}
}

// Load reads a portfolio by ID.
func (fs *FileStore) Load(ctx context.Context, id string) (*models.Portfolio, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.read(id)
}

func (fs *FileStore) read(id string) (*models.Portfolio, error) {
	path := fs.filePath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("portfolio '%s': %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("portfolio '%s' is empty", id)
	}

	var p models.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &p, nil
}

// List returns every saved portfolio, most recently updated first.
// Files that fail to parse are logged and skipped.
func (fs *FileStore) List(ctx context.Context) ([]models.PortfolioListing, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ids, err := fs.listIDs()
	if err != nil {
		return nil, err
	}

	listings := make([]models.PortfolioListing, 0, len(ids))
	for _, id := range ids {
		p, err := fs.read(id)
		if err != nil {
			fs.logger.Warn().Str("portfolio", id).Err(err).Msg("Skipping unreadable portfolio")
			continue
		}
		listings = append(listings, p.Listing())
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].UpdatedAt.After(listings[j].UpdatedAt)
	})
	return listings, nil
}

// Delete removes a portfolio and its version backups.
func (fs *FileStore) Delete(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	target := fs.filePath(id)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", target, err)
	}
	for i := 1; i <= fs.versions; i++ {
		os.Remove(fmt.Sprintf("%s.v%d", target, i))
	}
	return nil
}

// listIDs returns saved portfolio IDs, excluding version and temp files.
func (fs *FileStore) listIDs() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", fs.dir, err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}

// Close is a no-op for the file backend.
func (fs *FileStore) Close() error {
	return nil
}

var _ interfaces.PortfolioStore = (*FileStore)(nil)
