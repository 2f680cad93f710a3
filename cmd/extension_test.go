package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script requires a POSIX shell")
	}
	tempDir := t.TempDir()

	// ctax-hello dumps the variables it receives into the file given as argument.
	script := `#!/bin/sh
printf '%s\n%s\n%s\n' "$CTAX_LEDGER_FILE" "$CTAX_YEAR" "$CTAX_VERBOSE" > "$1"
exit 3
`
	if err := os.WriteFile(filepath.Join(tempDir, "ctax-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write ctax-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv(EnvLedgerFile, "random_ledger.jsonl")
	t.Setenv(EnvYear, "2023")
	t.Setenv(EnvVerbose, "true")

	out := filepath.Join(tempDir, "out.txt")
	found, code := RunExtension("hello", []string{out})
	if !found {
		t.Fatal("RunExtension(hello) did not find ctax-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension(hello) exit code = %d, want 3", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ctax-hello did not run: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{"random_ledger.jsonl", "2023", "true"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ctax-hello received %v, want %v", got, want)
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("does-not-exist", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
