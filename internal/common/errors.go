// Package common defines shared constants and sentinel errors used across
// the fsrelay server and client. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrConnectionClosed = errors.New("connection closed")

	// Remote reported a failure through its fixed error text.
	ErrRemote = errors.New("remote error")

	// Upload size outside (0, MaxUploadSize].
	ErrUploadSize = errors.New("invalid upload size")

	// The line protocol has no quoting, so arguments cannot contain whitespace.
	ErrWhitespaceInArgument = errors.New("argument contains whitespace")

	// Filesystem errors.
	ErrNotRegular = errors.New("not a regular file")

	// Remote path absent from its parent listing.
	ErrNotFound = errors.New("no such file or directory")
)
