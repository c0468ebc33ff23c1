// Package storage owns the load/save cycle over the two flat files. Every
// session iteration loads both collections in full and every admin mutation
// saves both in full; there is no append path and no partial write.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/codec"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
)

type Store struct {
	patientsPath string
	doctorsPath  string
	log          zerolog.Logger
}

func NewStore(patientsPath, doctorsPath string, log zerolog.Logger) *Store {
	return &Store{patientsPath: patientsPath, doctorsPath: doctorsPath, log: log}
}

// LoadPatients decodes the patients file. A missing file is not an error: it
// yields an empty collection so a first run bootstraps cleanly.
func (s *Store) LoadPatients() (map[int]patient.Patient, error) {
	data, err := os.ReadFile(s.patientsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Str("path", s.patientsPath).Msg("patients file missing, starting empty")
			return map[int]patient.Patient{}, nil
		}
		return nil, fmt.Errorf("read patients file: %w", err)
	}
	return codec.DecodePatients(data)
}

// SavePatients rewrites the whole patients file from the collection.
func (s *Store) SavePatients(patients map[int]patient.Patient) error {
	if err := writeAtomic(s.patientsPath, codec.EncodePatients(patients)); err != nil {
		return fmt.Errorf("write patients file: %w", err)
	}
	s.log.Debug().Int("records", len(patients)).Str("path", s.patientsPath).Msg("patients saved")
	return nil
}

// LoadDoctors decodes the doctors file, with the same missing-file soft-fail
// as LoadPatients.
func (s *Store) LoadDoctors() (map[int]doctor.Record, error) {
	data, err := os.ReadFile(s.doctorsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Str("path", s.doctorsPath).Msg("doctors file missing, starting empty")
			return map[int]doctor.Record{}, nil
		}
		return nil, fmt.Errorf("read doctors file: %w", err)
	}
	return codec.DecodeDoctors(data)
}

// SaveDoctors rewrites the whole doctors file from the collection.
func (s *Store) SaveDoctors(doctors map[int]doctor.Record) error {
	if err := writeAtomic(s.doctorsPath, codec.EncodeDoctors(doctors)); err != nil {
		return fmt.Errorf("write doctors file: %w", err)
	}
	s.log.Debug().Int("records", len(doctors)).Str("path", s.doctorsPath).Msg("doctors saved")
	return nil
}

// writeAtomic stages the rewrite in a temp file and renames it into place,
// so a crash mid-encode cannot leave a truncated database file.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
