// Command scryptauth hashes and verifies passwords using auto-tuned scrypt
// hash records.
//
// Hash a password (prompted twice, record printed to stdout as base64):
//
//	scryptauth
//
// Verify a password against a stored record (exit status 0 on match, 1 on
// mismatch or error):
//
//	scryptauth -verify 'c2NyeXB0AA4...'
//
// The password can also be supplied via the SCRYPTAUTH_PASSWORD environment
// variable for non-interactive use.  Set DEBUG=1 to log the tuned cost
// parameters.
package main

import (
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/passkit/scryptauth"
)

// logger is the package-level logger for debug and error messages.
var logger = newLogger()

type config struct {
	verify  string
	maxMem  float64
	maxTime float64
}

// newLogger creates a stderr logger whose level follows the DEBUG
// environment variable: DEBUG set means debug level, otherwise info.
func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.InfoLevel,
	})
	if os.Getenv("DEBUG") != "" {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

func main() {
	cfg := parseArgs()

	if cfg.verify != "" {
		os.Exit(runVerify(cfg))
	}
	os.Exit(runHash(cfg))
}

func parseArgs() *config {
	verify := flag.String("verify", "", "Verify the password against this base64 hash record instead of hashing")
	maxMem := flag.Float64("maxmem", scryptauth.DefaultMaxMemFrac, "Fraction of total memory a derivation may use (0 < f <= 0.5)")
	maxTime := flag.Float64("maxtime", scryptauth.DefaultMaxTime, "Wall-clock budget per derivation, in seconds")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "usage: scryptauth [-maxmem FRAC] [-maxtime SECONDS] [-verify RECORD]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	return &config{
		verify:  *verify,
		maxMem:  *maxMem,
		maxTime: *maxTime,
	}
}

func runHash(cfg *config) int {
	password, err := getPassphraseWithConfirm("Password: ", "Confirm password: ")
	if err != nil {
		logger.Errorf("Cannot read password: error=%v", err)
		return 1
	}
	defer zeroBytes(password)

	h, err := scryptauth.NewHasher(scryptauth.Options{
		MaxMemFrac: cfg.maxMem,
		MaxTime:    cfg.maxTime,
	})
	if err != nil {
		logger.Errorf("Invalid options: error=%v", err)
		return 1
	}

	logTunedParams(cfg)

	record, err := h.Hash(password)
	if err != nil {
		logger.Errorf("Hashing failed: error=%v", err)
		return 1
	}

	fmt.Println(base64.StdEncoding.EncodeToString(record))
	return 0
}

func runVerify(cfg *config) int {
	password, err := getPassphrase("Password: ")
	if err != nil {
		logger.Errorf("Cannot read password: error=%v", err)
		return 1
	}
	defer zeroBytes(password)

	ok, err := scryptauth.VerifyString(cfg.verify, string(password))
	if err != nil {
		if errors.Is(err, scryptauth.ErrInvalidRecord) {
			logger.Errorf("Record is not valid base64: error=%v", err)
		} else {
			logger.Errorf("Verification failed: error=%v", err)
		}
		return 1
	}
	if !ok {
		logger.Error("Password does not match")
		return 1
	}

	logger.Info("Password matches")
	return 0
}

// logTunedParams debug-logs the parameters the configured budgets produce,
// using a throwaway tuning pass so the figures match what Hash will pick.
func logTunedParams(cfg *config) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	params, err := scryptauth.Tune(scryptauth.SystemEstimator{}, cfg.maxMem, cfg.maxTime)
	if err != nil {
		logger.Debugf("Tuning preview failed: error=%v", err)
		return
	}
	logger.Debugf("Tuned parameters: %s (N=%d)", params, params.N())
}
