package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/l3aro/go-valueset/cmd/gvs/commands"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{name: "success", err: nil, want: exitOK},
		{
			name:    "startup",
			err:     &commands.StartupError{Err: errors.New("accepts 1 arg(s), received 0")},
			want:    exitStartup,
			wantMsg: "Error: accepts 1 arg(s), received 0\n",
		},
		{
			name:    "wrapped startup",
			err:     fmt.Errorf("run: %w", &commands.StartupError{Err: errors.New("missing")}),
			want:    exitStartup,
			wantMsg: "Error: run: missing\n",
		},
		{
			name:    "failure",
			err:     errors.New("traversal stalled"),
			want:    exitFailure,
			wantMsg: "Error: traversal stalled\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.want, exitCode(&buf, tt.err))
			assert.Equal(t, tt.wantMsg, buf.String())
		})
	}
}
