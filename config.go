package main

import "sync"

type Config struct {
	ShowHints       bool `json:"show_hints"`
	LogMoves        bool `json:"log_moves"`
	AiMoveDelayMs   int  `json:"ai_move_delay_ms"`
	PersistSettings bool `json:"persist_settings"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ShowHints: true,
		LogMoves:  true,
		// Short delay so the UI shows the AI "thinking" instead of the
		// reply landing in the same frame as the human move.
		AiMoveDelayMs:   300,
		PersistSettings: true,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
