//go:build !darwin && !windows

package browser

import "os/exec"

func openCommand(url string) *exec.Cmd {
	return exec.Command("xdg-open", url)
}
