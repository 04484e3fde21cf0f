package models

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SaveDir is the root directory for per-player progress files.
var SaveDir = ".saves"

// ErrNoProgress is returned when a player has no saved progress for a story.
var ErrNoProgress = errors.New("no saved progress")

// Progress records where a player stopped in a story. The choice path is the
// only state needed; everything else is rebuilt by replaying it.
type Progress struct {
	ID        string    `yaml:"id"`
	Nickname  string    `yaml:"nickname"`
	StoryID   string    `yaml:"story_id"`
	Path      []string  `yaml:"path"`
	Completed bool      `yaml:"completed"`
	Outcome   string    `yaml:"outcome,omitempty"`
	Profile   string    `yaml:"profile,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func playerDir(nickname string) (string, error) {
	name := strings.TrimSpace(nickname)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid nickname %q", nickname)
	}
	return filepath.Join(SaveDir, url.PathEscape(name)), nil
}

// Save writes p to SaveDir/<nickname>/<story_id>.yaml, assigning an ID on first save.
func (p *Progress) Save() error {
	if p.StoryID == "" {
		return fmt.Errorf("progress for %q has no story id", p.Nickname)
	}
	dir, err := playerDir(p.Nickname)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, url.PathEscape(p.StoryID)+".yaml"), data, 0644)
}

// LoadProgress reads the saved progress of nickname in storyID.
func LoadProgress(nickname, storyID string) (*Progress, error) {
	dir, err := playerDir(nickname)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, url.PathEscape(storyID)+".yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoProgress
	}
	if err != nil {
		return nil, err
	}
	var p Progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &p, nil
}

// ListProgress returns every saved progress of nickname, ordered by story id.
func ListProgress(nickname string) ([]Progress, error) {
	dir, err := playerDir(nickname)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []Progress{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []Progress
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var p Progress
		if err := yaml.Unmarshal(data, &p); err != nil {
			// Skip files that are not progress records.
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoryID < out[j].StoryID })
	return out, nil
}
