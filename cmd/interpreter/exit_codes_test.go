package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/startup"
)

func TestClassify(t *testing.T) {
	usage := &startup.UsageError{Err: oierrors.New(oierrors.ErrCodeUnknownArgument, "unrecognized arguments")}
	failure := oierrors.New(oierrors.ErrCodeConfigInvalid, "missing API key")

	tests := []struct {
		name     string
		err      error
		reported bool
		code     int
	}{
		{"success", nil, true, 0},
		{"interrupt", context.Canceled, true, 0},
		{"wrapped interrupt", fmt.Errorf("chat: %w", context.Canceled), true, 0},
		{"usage error", usage, true, 1},
		{"other error", failure, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reported, err := classify(tt.err)
			assert.Equal(t, tt.reported, reported)
			assert.Equal(t, tt.code, exitCodeForError(err))
		})
	}
}

func TestWithExitCode(t *testing.T) {
	assert.NoError(t, withExitCode(nil, 3))

	base := errors.New("boom")
	err := withExitCode(base, 3)
	assert.Equal(t, 3, exitCodeForError(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "boom", err.Error())

	assert.Equal(t, 1, exitCodeForError(withExitCode(base, 0)))
}
