// SPDX-License-Identifier: MIT

// Command matprod reads two matrices from standard input, multiplies them
// and prints A, B and C = A * B.
//
// Usage:
//
//	matprod [--config path] [--log-level debug|info|warn|error] [--log-format auto|text|json]
//
// Scripted input works the same as typed input:
//
//	printf '2 2\n2 2\n1 2 3 4\n5 6 7 8\n' | matprod
//
// Exit status is 0 on success and 1 on incompatible shapes, allocation
// failure, closed input or an invalid configuration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs cmd and maps its error to an exit code.
func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "matprod: %v\n", err)
		return exitFailure
	}

	return exitSuccess
}
