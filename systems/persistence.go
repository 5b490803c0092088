package systems

import (
	"encoding/json"
	"fmt"
	"log"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/quasilyte/gdata"
)

const smoothingKey = "smoothing"

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "netsmooth",
	})
	if err != nil {
		return fmt.Errorf("open settings storage: %w", err)
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSmoothing loads the saved tuning. It returns nil when nothing usable is
// stored.
func LoadSmoothing() (*cfg.SmoothingConfig, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(smoothingKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	return decodeSmoothing(data)
}

func decodeSmoothing(data []byte) (*cfg.SmoothingConfig, error) {
	var s cfg.SmoothingConfig
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	if err := s.Validate(); err != nil {
		log.Printf("Warning: Ignoring saved settings: %v", err)
		return nil, err
	}
	return &s, nil
}

// SaveSmoothing saves the tuning to disk
func SaveSmoothing(s cfg.SmoothingConfig) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(smoothingKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}
