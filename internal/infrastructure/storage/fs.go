// Package storage persists accepted levels as JSON files, bucketed by
// difficulty directory. The stored form is the level's stable external
// representation; a load hands the state back without re-running generation
// checks.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"svw.info/tubesort/internal/domain"
)

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func diffDir(d domain.Difficulty) string {
	switch d {
	case domain.Easy:
		return "easy"
	case domain.Hard:
		return "hard"
	case domain.Expert:
		return "expert"
	default:
		return "medium"
	}
}

var buckets = []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert}

func (s *FS) pathFor(id string, d domain.Difficulty) string {
	return filepath.Join(s.dir, diffDir(d), strings.TrimSpace(id)+".json")
}

// Save writes the level under its difficulty bucket, assigning a fresh UUID
// when the caller left the ID empty.
func (s *FS) Save(ctx context.Context, l *domain.Level) error {
	if l == nil {
		return errors.New("invalid level: nil")
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	target := s.pathFor(l.ID, l.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// Load finds the level by ID in any difficulty bucket.
func (s *FS) Load(ctx context.Context, id string) (*domain.Level, error) {
	for _, d := range buckets {
		path := s.pathFor(id, d)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.Level
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// List scans every bucket and returns lightweight metadata entries.
func (s *FS) List(ctx context.Context) ([]domain.LevelMeta, error) {
	var out []domain.LevelMeta
	for _, d := range buckets {
		dir := filepath.Join(s.dir, diffDir(d))
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var l domain.Level
			if err := json.Unmarshal(data, &l); err != nil || l.ID == "" {
				continue
			}
			out = append(out, domain.LevelMeta{
				ID:         l.ID,
				Name:       l.Name,
				Difficulty: l.Difficulty,
				Par:        l.Par,
				CreatedAt:  l.CreatedAt,
			})
		}
	}
	return out, nil
}
