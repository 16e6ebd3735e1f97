// Package config loads service settings from the environment, with an
// optional YAML settings file underneath. Environment variables win.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Port          string `yaml:"port"`
	OllamaURL     string `yaml:"ollama_url"`
	OllamaModel   string `yaml:"ollama_model"`
	MockLLM       bool   `yaml:"mock_llm"`
	DataRoot      string `yaml:"data_root"`
	MaxChunkChars int    `yaml:"max_chunk_chars"`
	TableStrategy string `yaml:"table_strategy"`
	Concurrency   int    `yaml:"concurrency"`
}

func defaults() Settings {
	return Settings{
		Port:          "8081",
		OllamaURL:     "http://localhost:11434",
		OllamaModel:   "llama3:instruct",
		DataRoot:      "./projects",
		MaxChunkChars: 12000,
		TableStrategy: "auto",
		Concurrency:   4,
	}
}

// Load reads .env (if present), then the YAML file named by SSDC_CONFIG (if
// any), then individual environment variables.
func Load() (Settings, error) {
	_ = godotenv.Load()
	s := defaults()

	if path := os.Getenv("SSDC_CONFIG"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &s); err != nil {
			return s, fmt.Errorf("parse config file: %w", err)
		}
	}

	s.Port = getenv("PORT", s.Port)
	s.OllamaURL = getenv("OLLAMA_URL", s.OllamaURL)
	s.OllamaModel = getenv("OLLAMA_MODEL", s.OllamaModel)
	s.DataRoot = getenv("DATA_ROOT", s.DataRoot)
	s.TableStrategy = getenv("TABLE_STRATEGY", s.TableStrategy)
	if v := os.Getenv("OLLAMA_MOCK"); v != "" {
		s.MockLLM = v == "1" || v == "true"
	}
	if v := os.Getenv("MAX_CHUNK_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("MAX_CHUNK_CHARS: %w", err)
		}
		s.MaxChunkChars = n
	}
	if v := os.Getenv("CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("CONCURRENCY: %w", err)
		}
		s.Concurrency = n
	}
	return s, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
