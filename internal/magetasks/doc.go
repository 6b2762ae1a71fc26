// Package magetasks provides the build, test, lint and conformance tasks
// used by the Magefile. Tasks print sectioned progress to Out.
package magetasks
