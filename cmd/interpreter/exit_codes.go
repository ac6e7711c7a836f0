package main

import (
	"context"
	"errors"

	"github.com/odvcencio/interpreter/pkg/startup"
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return 1
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// classify maps launcher errors onto exit behaviour. An interrupt is a
// clean shutdown; command-line errors have already been printed.
func classify(err error) (reported bool, out error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return true, nil
	}
	var usage *startup.UsageError
	if errors.As(err, &usage) {
		return true, withExitCode(err, 1)
	}
	return false, err
}

func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
