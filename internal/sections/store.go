package sections

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Wrapper file names inside a template directory. Everything between them is
// section fragments named <id>.html.
const (
	wrapperOpenFile  = "wrapper-open.html"
	wrapperCloseFile = "wrapper-close.html"
)

// Store holds the HTML fragments loaded from a template directory. A section
// whose file is missing is simply unavailable; the planner never sees it.
type Store struct {
	dir          string
	wrapperOpen  string
	wrapperClose string
	fragments    map[string]string
}

// Load reads the wrapper markup and every known section fragment from dir.
// Missing section files are logged and skipped; missing wrapper files are an
// error because no email can be assembled without them.
func Load(dir string) (*Store, error) {
	wrapperOpen, err := os.ReadFile(filepath.Join(dir, wrapperOpenFile))
	if err != nil {
		return nil, &StoreError{
			Message: fmt.Sprintf("failed to read %s in %s", wrapperOpenFile, dir),
			Cause:   err,
		}
	}

	wrapperClose, err := os.ReadFile(filepath.Join(dir, wrapperCloseFile))
	if err != nil {
		return nil, &StoreError{
			Message: fmt.Sprintf("failed to read %s in %s", wrapperCloseFile, dir),
			Cause:   err,
		}
	}

	fragments := make(map[string]string, len(catalog))
	for _, entry := range catalog {
		path := filepath.Join(dir, entry.ID+".html")
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("Warning: no template for section %q (%s), section unavailable", entry.ID, path)
				continue
			}
			return nil, &StoreError{
				Message: fmt.Sprintf("failed to read template for section %q", entry.ID),
				Cause:   err,
			}
		}
		fragments[entry.ID] = string(content)
	}

	return &Store{
		dir:          dir,
		wrapperOpen:  string(wrapperOpen),
		wrapperClose: string(wrapperClose),
		fragments:    fragments,
	}, nil
}

// Dir returns the directory the store was loaded from.
func (s *Store) Dir() string {
	return s.dir
}

// Fragment returns the raw HTML for a section id.
func (s *Store) Fragment(id string) (string, bool) {
	fragment, ok := s.fragments[id]
	return fragment, ok
}

// Available returns the ids with an on-disk template, in catalog order.
func (s *Store) Available() []string {
	ids := make([]string, 0, len(s.fragments))
	for _, entry := range catalog {
		if _, ok := s.fragments[entry.ID]; ok {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// WrapperOpen returns the markup emitted before the first section.
func (s *Store) WrapperOpen() string {
	return s.wrapperOpen
}

// WrapperClose returns the markup emitted after the last section.
func (s *Store) WrapperClose() string {
	return s.wrapperClose
}
