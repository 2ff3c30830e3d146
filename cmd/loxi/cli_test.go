package main

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// buildLoxi compiles the CLI into the calling test's temporary directory
// and returns the path to the resulting executable.
func buildLoxi(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "loxi")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build loxi: %v\n%s", err, out)
	}
	return bin
}

func TestRunScriptsSnapshotStdout(t *testing.T) {
	binary := buildLoxi(t)

	scripts := []string{
		"closures.lox",
		"classes.lox",
	}

	for _, script := range scripts {
		t.Run(script, func(t *testing.T) {
			cmd := exec.Command(binary, "run", filepath.Join("testdata", script))
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			if err := cmd.Run(); err != nil {
				t.Fatalf("run %s: %v\nstderr:\n%s", script, err, stderr.String())
			}

			snaps.MatchSnapshot(t, stdout.String())
		})
	}
}

func TestRunDumpASTPlain(t *testing.T) {
	binary := buildLoxi(t)

	cmd := exec.Command(binary, "run", "--dump-ast", "-e", "var x = 1 + 2;")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("run --dump-ast: %v\nstderr:\n%s", err, stderr.String())
	}

	snaps.MatchSnapshot(t, stdout.String())
}

func TestRunDumpASTJSON(t *testing.T) {
	binary := buildLoxi(t)

	cmd := exec.Command(binary, "run", "--dump-ast=json", "-e", "print 1 + 2;")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("run --dump-ast=json: %v\nstderr:\n%s", err, stderr.String())
	}

	snaps.MatchSnapshot(t, stdout.String())
}

func TestRunExitCodeOnRuntimeError(t *testing.T) {
	binary := buildLoxi(t)

	cmd := exec.Command(binary, "run", filepath.Join("testdata", "undefined_variable.lox"))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected an *exec.ExitError, got %T (%v)", err, err)
	}
	if got := exitErr.ExitCode(); got != 70 {
		t.Errorf("exit code = %d, want 70\nstderr:\n%s", got, stderr.String())
	}
	if stderr.Len() == 0 {
		t.Error("expected a runtime error message on stderr")
	}
}

func TestRunExitCodeOnParseError(t *testing.T) {
	binary := buildLoxi(t)

	cmd := exec.Command(binary, "run", filepath.Join("testdata", "parse_error.lox"))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected an *exec.ExitError, got %T (%v)", err, err)
	}
	if got := exitErr.ExitCode(); got != 65 {
		t.Errorf("exit code = %d, want 65\nstderr:\n%s", got, stderr.String())
	}
}

func TestRunEvalFlag(t *testing.T) {
	binary := buildLoxi(t)

	cmd := exec.Command(binary, "run", "-e", `print "hi" + " there";`)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("run -e: %v\nstderr:\n%s", err, stderr.String())
	}

	if got, want := stdout.String(), "hi there\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
