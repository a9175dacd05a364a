package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rqpush/rqpush/internal/domain"
)

const historyFile = ".rqpush/history/sends.json"

// FileHistory implements domain.SendHistory using JSON file storage
// under the project directory.
type FileHistory struct {
	projectPath string
}

func New(projectPath string) *FileHistory {
	return &FileHistory{projectPath: projectPath}
}

// Path returns the location of the history file.
func (h *FileHistory) Path() string {
	return filepath.Join(h.projectPath, historyFile)
}

func (h *FileHistory) Save(record domain.SendRecord) error {
	records, err := h.Load()
	if err != nil {
		return err
	}

	records = append(records, record)

	fp := h.Path()
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load() ([]domain.SendRecord, error) {
	data, err := os.ReadFile(h.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []domain.SendRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	return records, nil
}
