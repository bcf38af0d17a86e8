package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the data directory. The layouts are shared with the
// previous deployment of this monitor, so they must not change shape.
const (
	statusFile = "current_status.json"
	dayFile    = "day_data.json"
)

// FileStore persists both records as JSON files in a single directory.
// Writes are atomic (temp file + rename) so a crash never leaves a torn
// record on disk.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write if needed.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// statusDoc is the on-disk layout of current_status.json.
// isOpen is 0/1 rather than a JSON bool, matching the existing files.
type statusDoc struct {
	IsOpen     int   `json:"isOpen"`
	LastOpened int64 `json:"lastOpened"`
	LastClosed int64 `json:"lastClosed"`
}

// dayDoc is the value under the single date key in day_data.json.
type dayDoc struct {
	NumOfOpenings int          `json:"numOfOpenings"`
	Openings      []openingDoc `json:"openings"`
}

type openingDoc struct {
	Opened int64 `json:"opened"`
	Closed int64 `json:"closed"`
}

// ReadStatus loads the current status record.
func (s *FileStore) ReadStatus() (CurrentStatus, error) {
	data, err := s.readFile(statusFile)
	if err != nil {
		return CurrentStatus{}, err
	}

	var doc statusDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return CurrentStatus{}, s.corrupt(statusFile, err)
	}

	return CurrentStatus{
		IsOpen:     doc.IsOpen != 0,
		LastOpened: doc.LastOpened,
		LastClosed: doc.LastClosed,
	}, nil
}

// WriteStatus replaces the current status record.
func (s *FileStore) WriteStatus(st CurrentStatus) error {
	doc := statusDoc{
		LastOpened: st.LastOpened,
		LastClosed: st.LastClosed,
	}
	if st.IsOpen {
		doc.IsOpen = 1
	}
	return s.writeFile(statusFile, doc)
}

// ReadDay loads the day aggregate record. The file holds a map with exactly
// one date key; anything else is treated as corrupt.
func (s *FileStore) ReadDay() (DayAggregate, error) {
	data, err := s.readFile(dayFile)
	if err != nil {
		return DayAggregate{}, err
	}

	var m map[string]dayDoc
	if err := json.Unmarshal(data, &m); err != nil {
		return DayAggregate{}, s.corrupt(dayFile, err)
	}
	if len(m) != 1 {
		return DayAggregate{}, s.corrupt(dayFile, fmt.Errorf("expected exactly one date key, found %d", len(m)))
	}

	var agg DayAggregate
	for date, doc := range m {
		agg = DayAggregate{
			Date:        date,
			NumOpenings: doc.NumOfOpenings,
			Openings:    make([]Opening, len(doc.Openings)),
		}
		for i, o := range doc.Openings {
			agg.Openings[i] = Opening{Opened: o.Opened, Closed: o.Closed}
		}
	}
	return agg, nil
}

// WriteDay replaces the day aggregate record.
func (s *FileStore) WriteDay(agg DayAggregate) error {
	doc := dayDoc{
		NumOfOpenings: agg.NumOpenings,
		Openings:      make([]openingDoc, len(agg.Openings)),
	}
	for i, o := range agg.Openings {
		doc.Openings[i] = openingDoc{Opened: o.Opened, Closed: o.Closed}
	}
	return s.writeFile(dayFile, map[string]dayDoc{agg.Date: doc})
}

func (s *FileStore) readFile(name string) ([]byte, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, ErrNotInitialized
	}
	return data, nil
}

func (s *FileStore) writeFile(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// corrupt backs up an unreadable file so the daemon can be restarted with
// fresh defaults without silently discarding the evidence.
func (s *FileStore) corrupt(name string, cause error) error {
	path := filepath.Join(s.dir, name)
	backup := path + ".corrupt"
	_ = os.Rename(path, backup)
	return fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backup, cause)
}
