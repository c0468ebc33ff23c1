package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/platform/storage"
	"github.com/hms/hms/internal/shell"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms",
		Short: "Hospital Management System",
	}

	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}
}

func runShell() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Logger goes to stderr so it never interleaves with the menus on stdout.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	store := storage.NewStore(cfg.PatientsFile, cfg.DoctorsFile, logger)
	sess := shell.New(cfg, store, logger, os.Stdin, os.Stdout)
	return sess.Run(context.Background())
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Decode both data files and report what they contain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			store := storage.NewStore(cfg.PatientsFile, cfg.DoctorsFile, logger)

			patients, err := store.LoadPatients()
			if err != nil {
				return fmt.Errorf("patients file: %w", err)
			}
			fmt.Printf("%s: %d patient record(s)\n", cfg.PatientsFile, len(patients))

			doctors, err := store.LoadDoctors()
			if err != nil {
				return fmt.Errorf("doctors file: %w", err)
			}
			appointments := 0
			for _, rec := range doctors {
				appointments += len(rec.Appointments)
			}
			fmt.Printf("%s: %d doctor record(s), %d appointment(s)\n", cfg.DoctorsFile, len(doctors), appointments)
			return nil
		},
	}
}
