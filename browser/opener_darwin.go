//go:build darwin

package browser

import "os/exec"

func openCommand(url string) *exec.Cmd {
	return exec.Command("open", url)
}
