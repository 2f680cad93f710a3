package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix prefixes the binaries found in PATH that extend ctax with new commands.
const ExtensionPrefix = "ctax-"

// RunExtension attempts to find and execute an external ctax-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
// The resolved configuration is passed to the extension through CTAX_* variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv(a.cfg)...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the variables describing cfg.
func extensionEnv(cfg Config) []string {
	return []string{
		EnvLedgerFile + "=" + cfg.Ledger,
		EnvYear + "=" + strconv.Itoa(cfg.Year),
		EnvVerbose + "=" + strconv.FormatBool(cfg.Verbose),
		EnvModel + "=" + cfg.Model,
	}
}
