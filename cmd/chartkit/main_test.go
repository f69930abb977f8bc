package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spektr-org/chartkit/internal/cli"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run(&out, &errOut, []string{"-version"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "chartkit ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-format", "gif"})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Errorf("err = %v, want exit code 2", err)
	}
}
