//go:build !linux && !darwin

package secrets

func lockMemory(b []byte) error   { return nil }
func unlockMemory(b []byte) error { return nil }
