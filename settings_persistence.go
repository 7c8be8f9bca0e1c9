package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const settingsFileName = "reversi-backend/settings.json"

type persistedSettings struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

// loadPersistedSettings restores the last saved settings and config from
// the XDG config directory. Missing or unreadable files fall back to the
// defaults without failing startup.
func loadPersistedSettings() GameSettings {
	settings := DefaultGameSettings()
	if !GetConfig().PersistSettings {
		return settings
	}
	absPath, err := xdg.SearchConfigFile(settingsFileName)
	if err != nil {
		return settings
	}
	dump, err := readSettingsFile(absPath)
	if err != nil {
		log.Printf("[backend] load settings %s: %v", absPath, err)
		return settings
	}
	configStore.Update(dump.Config)
	return settingsFromDTO(dump.Settings, settings)
}

func persistSettings(settings GameSettings) {
	if !GetConfig().PersistSettings {
		return
	}
	absPath, err := xdg.ConfigFile(settingsFileName)
	if err != nil {
		log.Printf("[backend] resolve settings path: %v", err)
		return
	}
	if err := writeSettingsFile(absPath, persistedSettings{
		Settings: settingsToDTO(settings),
		Config:   GetConfig(),
	}); err != nil {
		log.Printf("[backend] persist settings %s: %v", absPath, err)
	}
}

func writeSettingsFile(path string, dump persistedSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readSettingsFile(path string) (persistedSettings, error) {
	var dump persistedSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return dump, err
	}
	if err := json.Unmarshal(data, &dump); err != nil {
		return dump, err
	}
	return dump, nil
}
