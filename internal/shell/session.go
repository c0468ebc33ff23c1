// Package shell is the interactive menu front-end. It owns everything the
// core does not: prompting, integer-parse retries, re-prompt loops on
// rejected input, and the password gate. All data access goes through the
// domain services, and each loop iteration reloads both collections from
// disk before doing anything with them.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/auditevent"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/platform/storage"
)

type Session struct {
	cfg   *config.Config
	store *storage.Store
	log   zerolog.Logger
	in    *bufio.Scanner
	out   io.Writer
	audit *auditevent.Service

	// failed password attempts, accumulated across admin-mode entries
	tries  int
	closed bool

	// rebuilt from the flat files at the top of every iteration
	patients    *patient.Service
	doctors     *doctor.Service
	scheduler   *scheduling.Service
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
}

func New(cfg *config.Config, store *storage.Store, log zerolog.Logger, in io.Reader, out io.Writer) *Session {
	return &Session{
		cfg:   cfg,
		store: store,
		log:   log,
		in:    bufio.NewScanner(in),
		out:   out,
		audit: auditevent.NewService(auditevent.NewMemoryRepository()),
	}
}

// Run drives the mode-selection loop until input is exhausted or the
// password tries run out. Each iteration is read-through: both collections
// are reloaded so a previous admin session's writes are always visible.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "****************************************************************************")
	fmt.Fprintln(s.out, "*                 Welcome to the Hospital Management System               *")
	fmt.Fprintln(s.out, "****************************************************************************")

	for !s.closed {
		if err := s.reload(); err != nil {
			return err
		}

		fmt.Fprintln(s.out, "-----------------------------------------")
		fmt.Fprintln(s.out, "| Enter 1 for admin mode                |")
		fmt.Fprintln(s.out, "| Enter 2 for user mode                 |")
		fmt.Fprintln(s.out, "-----------------------------------------")
		mode, err := s.prompt("Enter your mode: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch mode {
		case "1":
			if err := s.adminMode(ctx); err != nil {
				return ignoreEOF(err)
			}
		case "2":
			if err := s.userMode(ctx); err != nil {
				return ignoreEOF(err)
			}
		default:
			fmt.Fprintln(s.out, "Please choose 1 or 2")
		}
	}

	s.log.Info().Msg("session closed")
	return nil
}

func (s *Session) reload() error {
	patients, err := s.store.LoadPatients()
	if err != nil {
		return err
	}
	doctors, err := s.store.LoadDoctors()
	if err != nil {
		return err
	}

	s.patientRepo = patient.NewMemoryRepository(patients)
	s.doctorRepo = doctor.NewMemoryRepository(doctors)
	s.patients = patient.NewService(s.patientRepo)
	s.doctors = doctor.NewService(s.doctorRepo)
	s.scheduler = scheduling.NewService(s.doctorRepo, s.cfg.ClockAwareConflicts)
	return nil
}

// saveAll rewrites both files from the current in-memory collections.
func (s *Session) saveAll(ctx context.Context) error {
	patients, err := s.patientRepo.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.store.SavePatients(patients); err != nil {
		return err
	}
	doctors, err := s.doctorRepo.Snapshot(ctx)
	if err != nil {
		return err
	}
	return s.store.SaveDoctors(doctors)
}

// checkPassword gates admin mode. Wrong answers re-prompt until the
// configured try budget is spent, which closes the whole session.
func (s *Session) checkPassword() (bool, error) {
	password, err := s.prompt("Please enter your password: ")
	if err != nil {
		return false, err
	}

	for !s.passwordMatches(password) {
		s.tries++
		if s.tries >= s.cfg.PasswordTries {
			fmt.Fprintln(s.out, "Incorrect password, no more tries")
			s.closed = true
			return false, nil
		}
		password, err = s.prompt("Password incorrect, please try again: ")
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *Session) passwordMatches(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return password == s.cfg.AdminPassword
}

// prompt reads one trimmed line, returning io.EOF when input runs out.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptUpper reads a menu choice, uppercased so "b" and "B" both go back.
func (s *Session) promptUpper(label string) (string, error) {
	text, err := s.prompt(label)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(text), nil
}

// promptInt re-prompts until the answer parses as an integer. The core
// assumes already-typed input; this retry loop is the shell's job.
func (s *Session) promptInt(label string) (int, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(s.out, "The ID should be an integer number")
	}
}

// promptIntWhere re-prompts with retryLabel until the integer satisfies ok.
func (s *Session) promptIntWhere(label, retryLabel string, ok func(int) bool) (int, error) {
	id, err := s.promptInt(label)
	if err != nil {
		return 0, err
	}
	for !ok(id) {
		id, err = s.promptInt(retryLabel)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
