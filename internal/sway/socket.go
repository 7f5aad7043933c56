package sway

import (
	"errors"
	"os"
)

var ErrNoSocket = errors.New("sway: no ipc socket found (is SWAYSOCK set?)")

// ResolveSocketPath picks the ipc socket: an explicit value wins, then
// SWAYSOCK, then I3SOCK.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if sock := os.Getenv("SWAYSOCK"); sock != "" {
		return sock, nil
	}
	if sock := os.Getenv("I3SOCK"); sock != "" {
		return sock, nil
	}
	return "", ErrNoSocket
}
