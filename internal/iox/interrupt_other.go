//go:build !unix

package iox

func isInterrupted(error) bool { return false }
