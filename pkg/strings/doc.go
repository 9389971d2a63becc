// Package strings holds small rune-safe string helpers shared by the
// validator and the console output.
package strings
