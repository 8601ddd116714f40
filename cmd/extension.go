package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment passed to extensions.
const (
	EnvConfigFile = "PFX_CONFIG_FILE"
	EnvSelect     = "PFX_SELECT"
	EnvLogLevel   = "PFX_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external pfx-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "pfx-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// global flags are passed as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	cmd.Env = append(cmd.Env, EnvSelect+"="+*selectPath)
	if *logLevel != "" {
		cmd.Env = append(cmd.Env, EnvLogLevel+"="+*logLevel)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
