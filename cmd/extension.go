package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/cartera/config"
	"github.com/google/subcommands"
)

// EnvVerbose is set to "true" for extensions when -v is set.
const EnvVerbose = "CARTERA_VERBOSE"

// ExtensionPrefix is the prefix of the external subcommands binaries.
const ExtensionPrefix = "cartera-"

// extensionEnv returns the environment of an extension: the global flags are
// passed as environment variables, resolved through the configuration.
func extensionEnv() []string {
	env := os.Environ()
	if *configFile != "" {
		env = append(env, config.EnvConfig+"="+*configFile)
	}
	if cfg, err := loadConfig(); err == nil {
		env = append(env,
			config.EnvPositionsFile+"="+cfg.PositionsFile,
			config.EnvCurrency+"="+cfg.DisplayCurrency,
			config.EnvLogLevel+"="+cfg.LogLevel,
		)
	} else if *positionsFile != "" {
		env = append(env, config.EnvPositionsFile+"="+*positionsFile)
	}
	return append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
}

// RunExtension attempts to find and execute an external cartera-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}
	return true, 0
}

// Execute runs the subcommand named on the command line f. Names that are not
// registered in c run as extensions when one is found in the PATH.
func Execute(ctx context.Context, c *subcommands.Commander, f *flag.FlagSet) int {
	if name := f.Arg(0); name != "" && !registered(c, name) {
		if ok, code := RunExtension(name, f.Args()[1:]); ok {
			return code
		}
	}
	return int(c.Execute(ctx))
}

// registered reports whether name is a subcommand of c.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
