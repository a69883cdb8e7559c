// Package cli provides shared helpers for the aigovernor command-line
// interface: typed command errors, output formatting, and shutdown
// signal handling.
package cli
