// Package language normalizes operator-supplied language hints for the
// speech recognizer and maps codes to display names for CLI output.
package language
