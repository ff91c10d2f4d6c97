// Package repo persists element records as paired artifacts: a lossless PNG
// under ui_elements/screenshots/ and a JSON document under
// ui_elements/{module}/. The pair is written as one logical unit; the
// repository never holds an image without its record or vice versa.
package repo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

const (
	elementsDir    = "ui_elements"
	screenshotsDir = "screenshots"
)

// Repository stores element records under a single root directory. A single
// writer process is assumed; concurrent external modification is undefined.
type Repository struct {
	root string
}

// New creates a repository rooted at the given directory. Nothing is
// created until the first write.
func New(root string) *Repository {
	return &Repository{root: root}
}

// Root returns the repository root directory.
func (r *Repository) Root() string {
	return r.root
}

// ScreenshotPath returns the on-disk image path for an element id.
// Screenshots are flat and module-independent.
func (r *Repository) ScreenshotPath(elementID string) string {
	return filepath.Join(r.root, elementsDir, screenshotsDir, elementID+".png")
}

// RecordPath returns the on-disk JSON path for an element id in a module.
func (r *Repository) RecordPath(module, elementID string) string {
	return filepath.Join(r.root, elementsDir, module, elementID+".json")
}

// Exists reports whether a record with this id is persisted in the module.
func (r *Repository) Exists(module, elementID string) (bool, error) {
	_, err := os.Stat(r.RecordPath(module, elementID))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ListIDs returns the set of element ids persisted in a module. A missing
// module directory is an empty set, not an error.
func (r *Repository) ListIDs(module string) (map[string]struct{}, error) {
	dir := filepath.Join(r.root, elementsDir, module)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list module %q: %w", module, err)
	}
	ids := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids[strings.TrimSuffix(e.Name(), ".json")] = struct{}{}
	}
	return ids, nil
}

// ListScreenshots returns the set of element ids that have a persisted
// image in the flat screenshot directory.
func (r *Repository) ListScreenshots() (map[string]struct{}, error) {
	dir := filepath.Join(r.root, elementsDir, screenshotsDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}
	ids := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		ids[strings.TrimSuffix(e.Name(), ".png")] = struct{}{}
	}
	return ids, nil
}

// ListModules returns the sorted module names present in the repository.
func (r *Repository) ListModules() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, elementsDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	var modules []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != screenshotsDir {
			modules = append(modules, e.Name())
		}
	}
	sort.Strings(modules)
	return modules, nil
}

// Load reads one record back from disk.
func (r *Repository) Load(module, elementID string) (model.ElementRecord, error) {
	data, err := os.ReadFile(r.RecordPath(module, elementID))
	if err != nil {
		return model.ElementRecord{}, fmt.Errorf("load %s/%s: %w", module, elementID, err)
	}
	var rec model.ElementRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.ElementRecord{}, fmt.Errorf("decode %s/%s: %w", module, elementID, err)
	}
	rec.ModuleName = module
	return rec, nil
}

// SaveResult reports where the artifact pair was written.
type SaveResult struct {
	JSONPath       string
	ScreenshotPath string
}

// Save persists the record and its image as one logical unit. The image is
// written first, then the JSON; if the JSON write fails on a fresh save the
// image is rolled back so no unpaired artifact remains. On overwrite the
// existing record's created_at is preserved. Directories are created lazily.
func (r *Repository) Save(rec model.ElementRecord, img image.Image) (SaveResult, error) {
	module := rec.Module()
	imgPath := r.ScreenshotPath(rec.ElementID)
	jsonPath := r.RecordPath(module, rec.ElementID)

	existed, err := r.Exists(module, rec.ElementID)
	if err != nil {
		return SaveResult{}, fmt.Errorf("check existing record: %w", err)
	}
	if existed {
		prev, err := r.Load(module, rec.ElementID)
		if err != nil {
			return SaveResult{}, fmt.Errorf("read existing record: %w", err)
		}
		rec.Metadata.CreatedAt = prev.Metadata.CreatedAt
	}

	if err := os.MkdirAll(filepath.Dir(imgPath), 0o755); err != nil {
		return SaveResult{}, fmt.Errorf("create screenshot dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0o755); err != nil {
		return SaveResult{}, fmt.Errorf("create module dir: %w", err)
	}

	if err := writeFileAtomic(imgPath, func(buf *bytes.Buffer) error {
		return png.Encode(buf, img)
	}); err != nil {
		return SaveResult{}, fmt.Errorf("write screenshot: %w", err)
	}

	if err := writeFileAtomic(jsonPath, func(buf *bytes.Buffer) error {
		return encodeRecord(buf, rec)
	}); err != nil {
		// Keep the pair consistent: a fresh image without its JSON is
		// rolled back. On overwrite the previous pair stays paired.
		if !existed {
			os.Remove(imgPath)
		}
		return SaveResult{}, fmt.Errorf("write record: %w", err)
	}

	return SaveResult{JSONPath: jsonPath, ScreenshotPath: imgPath}, nil
}

// encodeRecord serializes the record with two-space indentation and
// unescaped non-ASCII, matching the bit-exact artifact contract.
func encodeRecord(buf *bytes.Buffer, rec model.ElementRecord) error {
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}

// writeFileAtomic stages content in a temp file in the target directory and
// renames it into place, cleaning up the temp file on any failure.
func writeFileAtomic(path string, fill func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
