package mvnup

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/OneOfOne/xxhash"

	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/log"
)

const inventoryFileName = ".mvnup.state.json"

var ErrMultipleInstallations = fmt.Errorf("multiple installations found for the same version")

type ErrDigestMismatch struct {
	Path      string
	Algorithm string
	Expected  string
	Actual    string
}

func (e ErrDigestMismatch) Error() string {
	return fmt.Sprintf("digest mismatch for %q (%s): expected %q, got %q", e.Path, e.Algorithm, e.Expected, e.Actual)
}

// Inventory tracks maven installations under a single root directory, with a
// JSON state file recording digests of each installation's launcher.
type Inventory struct {
	root    string
	entries []InventoryEntry
	lock    *sync.RWMutex
}

type inventoryState struct {
	Entries []InventoryEntry `json:"entries"`
}

type InventoryEntry struct {
	root string

	Version    string            `json:"version"`
	PathInRoot string            `json:"path"`
	Digests    map[string]string `json:"digests"`
	DistID     string            `json:"dist,omitempty"`
}

// Path is the absolute-or-relative maven home directory for this entry
// (relative paths are anchored at the inventory root).
func (e InventoryEntry) Path() string {
	return filepath.Join(e.root, e.PathInRoot)
}

// Launcher is the path to the mvn executable within this installation.
func (e InventoryEntry) Launcher() string {
	return filepath.Join(e.Path(), "bin", "mvn")
}

// Verify recomputes digests of the launcher and compares them against what was
// recorded at install time.
func (e InventoryEntry) Verify(useXxh64, useSha256 bool) error {
	observed, err := fileDigests(e.Launcher())
	if err != nil {
		return fmt.Errorf("unable to digest maven launcher: %w", err)
	}

	var algorithms []string
	if useXxh64 {
		algorithms = append(algorithms, internal.XXH64Algorithm)
	}
	if useSha256 {
		algorithms = append(algorithms, internal.SHA256Algorithm)
	}

	for _, algorithm := range algorithms {
		expected, ok := e.Digests[algorithm]
		if !ok {
			return fmt.Errorf("no %s digest recorded for maven %s", algorithm, e.Version)
		}
		if expected != observed[algorithm] {
			return &ErrDigestMismatch{
				Path:      e.Launcher(),
				Algorithm: algorithm,
				Expected:  expected,
				Actual:    observed[algorithm],
			}
		}
	}
	return nil
}

func NewInventory(root string) (*Inventory, error) {
	inv := &Inventory{
		root: root,
		lock: &sync.RWMutex{},
	}
	if err := inv.loadState(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (i Inventory) Root() string {
	return i.root
}

func (i Inventory) StateFilePath() string {
	return filepath.Join(i.root, inventoryFileName)
}

// VersionPath is the directory a given version is (or would be) installed into.
func (i Inventory) VersionPath(version string) string {
	return filepath.Join(i.root, version)
}

func (i Inventory) Entries() []InventoryEntry {
	i.lock.RLock()
	defer i.lock.RUnlock()

	entries := make([]InventoryEntry, len(i.entries))
	copy(entries, i.entries)
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Version < entries[b].Version
	})
	return entries
}

// Get returns the entry for the given version, or nil if the version is not
// installed.
func (i Inventory) Get(version string) (*InventoryEntry, error) {
	i.lock.RLock()
	defer i.lock.RUnlock()

	var matches []InventoryEntry
	for _, e := range i.entries {
		if e.Version == version {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	}
	return nil, ErrMultipleInstallations
}

// Add records an installation that already exists on disk. The maven home must
// live under the inventory root.
func (i *Inventory) Add(version, mavenHome, distID string) error {
	i.lock.Lock()
	defer i.lock.Unlock()

	log.WithFields("version", version, "path", mavenHome).Trace("recording installation")

	relativePath, err := filepath.Rel(i.root, mavenHome)
	if err != nil || strings.HasPrefix(relativePath, "..") {
		return fmt.Errorf("installation path %q is not under the inventory root %q", mavenHome, i.root)
	}

	digests, err := fileDigests(filepath.Join(mavenHome, "bin", "mvn"))
	if err != nil {
		return fmt.Errorf("unable to digest maven launcher: %w", err)
	}

	entry := InventoryEntry{
		root:       i.root,
		Version:    version,
		PathInRoot: relativePath,
		Digests:    digests,
		DistID:     distID,
	}

	var entries []InventoryEntry
	for _, existing := range i.entries {
		if existing.Version == version {
			continue
		}
		entries = append(entries, existing)
	}
	i.entries = append(entries, entry)

	return i.saveState()
}

func (i *Inventory) loadState() error {
	i.lock.Lock()
	defer i.lock.Unlock()

	stateFilePath := i.StateFilePath()
	fh, err := os.Open(stateFilePath)
	if os.IsNotExist(err) {
		i.entries = nil
		return nil
	} else if err != nil {
		return fmt.Errorf("unable to open inventory state %q: %w", stateFilePath, err)
	}
	defer fh.Close()

	var state inventoryState
	if err := json.NewDecoder(fh).Decode(&state); err != nil {
		return fmt.Errorf("unable to parse inventory state %q: %w", stateFilePath, err)
	}

	i.entries = state.Entries
	for idx := range i.entries {
		i.entries[idx].root = i.root
	}
	return nil
}

// saveState writes the state file, dropping any entries whose installation
// directory no longer exists. Callers must hold the write lock.
func (i *Inventory) saveState() error {
	if err := os.MkdirAll(i.root, 0o755); err != nil {
		return fmt.Errorf("unable to create inventory root %q: %w", i.root, err)
	}

	var entries []InventoryEntry
	for _, e := range i.entries {
		if _, err := os.Stat(e.Path()); err != nil {
			log.WithFields("version", e.Version, "path", e.Path()).Trace("dropping inventory entry with missing installation")
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Version < entries[b].Version
	})
	i.entries = entries

	fh, err := os.Create(i.StateFilePath())
	if err != nil {
		return fmt.Errorf("unable to create inventory state %q: %w", i.StateFilePath(), err)
	}
	defer fh.Close()

	enc := json.NewEncoder(fh)
	enc.SetIndent("", " ")
	if err := enc.Encode(inventoryState{Entries: entries}); err != nil {
		return fmt.Errorf("unable to write inventory state: %w", err)
	}
	return nil
}

func fileDigests(path string) (map[string]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	defer fh.Close()

	return digestsForReader(fh)
}

func digestsForReader(r io.Reader) (map[string]string, error) {
	xxh := xxhash.New64()
	sha := sha256.New()

	if _, err := io.Copy(io.MultiWriter(xxh, sha), r); err != nil {
		return nil, fmt.Errorf("unable to digest contents: %w", err)
	}

	return map[string]string{
		internal.XXH64Algorithm:  fmt.Sprintf("%x", xxh.Sum64()),
		internal.SHA256Algorithm: fmt.Sprintf("%x", sha.Sum(nil)),
	}, nil
}
