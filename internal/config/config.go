package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override file values,
// e.g. PHONE_AGENT_TWILIO_TOKEN overrides [twilio] token.
const EnvPrefix = "PHONE_AGENT"

// ErrNotFound is returned for a section or key missing from the config file.
var ErrNotFound = errors.New("config value not found")

// Defaults are applied under the config file and the environment.
var Defaults = map[string]any{
	"pagerduty.base_url":       "https://api.pagerduty.com",
	"pagerduty.timeout":        "10s",
	"twilio.caller_id":         "+18005551212",
	"twilio.controller_number": "+18005551212",
	"twilio.twimlet_base":      "http://twimlets.com",
	"agent.timezone":           "America/Los_Angeles",
	"agent.desk_prefix":        "7",
	"agent.desk_replacement":   "+1408540",
	"agent.lookahead":          "8m",
	"email.driver":             "ses",
	"email.from":               "opsTeam@saasmail.my_company.com",
	"email.to":                 "sysEng@my_company.com",
	"email.region":             "us-east-1",
	"email.smtp_port":          25,
	"serve.cron":               "*/5 * * * *",
	"serve.listen":             ":3000",
}

// Store is the parsed config file with environment overrides.
type Store struct {
	v    *viper.Viper
	path string
}

// Load reads a .env file when present, then the config file at path.
func Load(path string) (*Store, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", " ", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return &Store{v: v, path: path}, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(section, key string) (string, error) {
	full := section + "." + key
	if !s.v.IsSet(full) {
		return "", fmt.Errorf("%w: [%s] %s", ErrNotFound, section, key)
	}
	return strings.TrimSpace(s.v.GetString(full)), nil
}

// Person looks a person up by full name in a section, ignoring case and
// surrounding blanks.
func (s *Store) Person(section, name string) (string, error) {
	entries := s.v.GetStringMapString(section)
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: section [%s]", ErrNotFound, section)
	}

	want := strings.TrimSpace(name)
	for key, value := range entries {
		if strings.EqualFold(strings.TrimSpace(key), want) {
			return strings.TrimSpace(value), nil
		}
	}
	return "", fmt.Errorf("%w: [%s] %s", ErrNotFound, section, name)
}

func (s *Store) get(key string) string {
	return strings.TrimSpace(s.v.GetString(key))
}

func (s *Store) duration(key string) (time.Duration, error) {
	raw := s.get(key)
	if raw == "" {
		return 0, nil
	}
	// A bare number is read as minutes, as on the command line.
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	minutes, err := time.ParseDuration(raw + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return minutes, nil
}
