//go:build windows

package state

import "os"

// lockFile is a no-op on Windows; O_RDWR open semantics provide sufficient
// protection for a single-user preferences file
func lockFile(file *os.File) error {
	return nil
}

// unlockFile is a no-op on Windows
func unlockFile(file *os.File) error {
	return nil
}
