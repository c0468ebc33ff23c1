package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Env                 string `mapstructure:"ENV"`
	PatientsFile        string `mapstructure:"PATIENTS_FILE"`
	DoctorsFile         string `mapstructure:"DOCTORS_FILE"`
	AdminPassword       string `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash   string `mapstructure:"ADMIN_PASSWORD_HASH"`
	PasswordTries       int    `mapstructure:"PASSWORD_TRIES"`
	ClockAwareConflicts bool   `mapstructure:"CLOCK_AWARE_CONFLICTS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("PATIENTS_FILE", "Patients_DataBase.csv")
	v.SetDefault("DOCTORS_FILE", "Doctors_DataBase.csv")
	v.SetDefault("ADMIN_PASSWORD", "1234")
	v.SetDefault("PASSWORD_TRIES", 3)
	v.SetDefault("CLOCK_AWARE_CONFLICTS", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("PATIENTS_FILE")
	v.BindEnv("DOCTORS_FILE")
	v.BindEnv("ADMIN_PASSWORD")
	v.BindEnv("ADMIN_PASSWORD_HASH")
	v.BindEnv("PASSWORD_TRIES")
	v.BindEnv("CLOCK_AWARE_CONFLICTS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable before a session starts.
func (c *Config) Validate() error {
	if c.PatientsFile == "" {
		return fmt.Errorf("PATIENTS_FILE must not be empty")
	}
	if c.DoctorsFile == "" {
		return fmt.Errorf("DOCTORS_FILE must not be empty")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.PasswordTries < 1 {
		return fmt.Errorf("PASSWORD_TRIES must be at least 1, got %d", c.PasswordTries)
	}
	return nil
}
