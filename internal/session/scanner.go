package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const claudeProjectsDir = "projects"

// Scanner finds and parses session JSONL files under a Claude data
// directory. Agent session files are included, not skipped; they set the
// record's agent flag instead.
type Scanner struct {
	BaseDir string
}

// DefaultClaudeDir is ~/.claude, the standard log location.
func DefaultClaudeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude")
}

func NewScanner(claudeDir string) *Scanner {
	if strings.TrimSpace(claudeDir) == "" {
		claudeDir = DefaultClaudeDir()
	}
	return &Scanner{BaseDir: filepath.Join(claudeDir, claudeProjectsDir)}
}

type fileInfo struct {
	path    string
	modTime time.Time
}

// Scan parses every session file, consulting the cache for unchanged files
// and parsing the rest in parallel. A nil cache disables caching. Results
// come back in a stable path order.
func (s *Scanner) Scan(cache *ScanCache) ([]Record, error) {
	files, err := s.findSessionFiles()
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	parsed := make(chan Record, len(files))
	valid := make(map[string]bool, len(files))
	mtimes := make(map[string]time.Time, len(files))

	var records []Record
	for _, f := range files {
		valid[f.path] = true
		mtimes[f.path] = f.modTime
		if cache != nil {
			if rec, ok := cache.Get(f.path, f.modTime); ok {
				records = append(records, rec)
				continue
			}
		}
		wg.Add(1)
		go func(fi fileInfo) {
			defer wg.Done()
			rec, err := ParseFile(fi.path)
			if err != nil {
				return
			}
			parsed <- rec
		}(f)
	}

	go func() {
		wg.Wait()
		close(parsed)
	}()

	for rec := range parsed {
		if cache != nil {
			cache.Set(rec.FilePath, mtimes[rec.FilePath], rec)
		}
		records = append(records, rec)
	}
	if cache != nil {
		cache.Prune(valid)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].FilePath < records[j].FilePath })
	return records, nil
}

func (s *Scanner) findSessionFiles() ([]fileInfo, error) {
	var files []fileInfo
	err := filepath.WalkDir(s.BaseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".jsonl") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, fileInfo{path: path, modTime: info.ModTime()})
		return nil
	})
	return files, err
}
