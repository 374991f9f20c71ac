// Package cli parses command-line arguments into an app.Config and defines
// the ExitError type used to surface specific exit codes to the entry point.
package cli
