// Package testutil lets tests use the test binary itself as a fake subject.
//
// A package opts in by calling MaybeRunHelper at the top of its TestMain.
// When the test binary is re-executed with COVRUN_HELPER_PROCESS=1 it runs
// the requested behaviour instead of the tests and exits.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// HelperEnvVar marks a re-executed test binary as a helper process
const HelperEnvVar = "COVRUN_HELPER_PROCESS"

// HelperArgs returns a command line that re-executes the current test binary
// as a helper performing the given actions.
//
// Actions, applied in order:
//
//	stdout <text>        write text to stdout
//	stderr <text>        write text to stderr
//	env <KEY>            print KEY=value of an environment variable to stdout
//	write <path> <text>  create path (and parents) containing text
//	writeenv <KEY> <rel> <text>  write text to $KEY/rel
//	sleep <duration>     sleep, e.g. 10s
//	exit <code>          exit with code
func HelperArgs(actions ...string) []string {
	return append([]string{os.Args[0], "-test.run=^$", "--"}, actions...)
}

// HelperEnv returns the environment entries that activate the helper
func HelperEnv() []string {
	return []string{HelperEnvVar + "=1"}
}

// MaybeRunHelper runs the helper and exits when the process was started by
// HelperArgs; otherwise it returns immediately.
func MaybeRunHelper() {
	if os.Getenv(HelperEnvVar) != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}

	os.Exit(runHelper(args))
}

func runHelper(args []string) int {
	for len(args) > 0 {
		switch args[0] {
		case "stdout":
			fmt.Fprint(os.Stdout, args[1])
			args = args[2:]
		case "stderr":
			fmt.Fprint(os.Stderr, args[1])
			args = args[2:]
		case "env":
			fmt.Fprintf(os.Stdout, "%s=%s\n", args[1], os.Getenv(args[1]))
			args = args[2:]
		case "write":
			if err := writeFile(args[1], args[2]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 98
			}
			args = args[3:]
		case "writeenv":
			if err := writeFile(filepath.Join(os.Getenv(args[1]), args[2]), args[3]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 98
			}
			args = args[4:]
		case "sleep":
			d, err := time.ParseDuration(args[1])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 98
			}
			time.Sleep(d)
			args = args[2:]
		case "exit":
			code, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 98
			}
			return code
		default:
			fmt.Fprintf(os.Stderr, "unknown helper action %q (%s)\n", args[0], strings.Join(args, " "))
			return 99
		}
	}
	return 0
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
