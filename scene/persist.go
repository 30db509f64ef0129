package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads the scene at path. When path is empty the scene is new and
// unsaved. A missing or malformed file still yields a usable empty scene
// bound to path, together with the error that caused the fallback.
func Load(lib Library, path string) (*Scene, error) {
	s := New(lib)
	s.path = path
	if path == "" {
		return s, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("scene: load %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return s, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	s.doc = doc
	return s, nil
}

// Encode returns the scene document as indented JSON.
func (s *Scene) Encode() ([]byte, error) {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	return append(b, '\n'), nil
}

// Save writes the scene to its path. The destination is replaced only once
// the whole document has been written.
func (s *Scene) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.write(s.path)
}

// SaveAs writes the scene to path and makes it the scene's path.
func (s *Scene) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := s.write(path); err != nil {
		return err
	}
	s.path = path
	return nil
}

func (s *Scene) write(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("scene: save %s: %w", path, err)
	}
	return nil
}
