package application

import (
	"os"

	"gopkg.in/yaml.v3"

	report "feedertrack/internal/report/domain"
)

// ThresholdConfig overrides the classifier's under/over ratios.
type ThresholdConfig struct {
	Under float64 `yaml:"under"`
	Over  float64 `yaml:"over"`
}

// ScheduleConfig defines the scheduled daily report.
type ScheduleConfig struct {
	DailyCron string `yaml:"daily_cron"`
}

// Config defines report engine configuration.
type Config struct {
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Schedule   ScheduleConfig  `yaml:"schedule"`
	WebhookURL string          `yaml:"webhook_url"`
}

// LoadConfig loads config from yaml or env.
func LoadConfig() (Config, error) {
	cfg := Config{
		WebhookURL: os.Getenv("REPORT_WEBHOOK_URL"),
	}

	if path := os.Getenv("REPORT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = getenvDefault("REPORT_DAILY_CRON", "0 12 * * *")
	}
	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv("REPORT_WEBHOOK_URL")
	}
	return cfg, nil
}

// ClassifierThresholds returns configured thresholds, falling back to the
// observed 70% / 130% band for any unset ratio.
func (c Config) ClassifierThresholds() report.Thresholds {
	th := report.DefaultThresholds()
	if c.Thresholds.Under > 0 {
		th.Under = c.Thresholds.Under
	}
	if c.Thresholds.Over > 0 {
		th.Over = c.Thresholds.Over
	}
	return th
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
