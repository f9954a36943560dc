package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Sync struct {
		// Keywords is the fixed filter list a full sync walks across
		// every source.
		Keywords []string `yaml:"keywords"`

		// Jittered delay between consecutive upstream calls.
		DelayMinMS int `yaml:"delay_min_ms"`
		DelayMaxMS int `yaml:"delay_max_ms"`

		// Background poller.
		PollEnabled     bool `yaml:"poll_enabled"`
		PollIntervalSec int  `yaml:"poll_interval_seconds"`
	} `yaml:"sync"`

	Sources struct {
		Adzuna struct {
			Country        string `yaml:"country"`
			ResultsPerPage int    `yaml:"results_per_page"`
		} `yaml:"adzuna"`

		RatePerHost float64 `yaml:"rate_per_host"`
		RateBurst   int     `yaml:"rate_burst"`
	} `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
