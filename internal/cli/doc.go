// Package cli turns chartkit's command-line flags into an app.Config and
// reports usage problems as an ExitError carrying the process exit code.
package cli
