package browser

import "agentview/logging"

// Open launches the system browser at the given URL. Failures are logged and
// returned; callers typically treat this as best effort.
func Open(url string) error {
	cmd := openCommand(url)
	if err := cmd.Start(); err != nil {
		logging.Logger.Warn("Failed to open browser", "url", url, "error", err)
		return err
	}
	// Detach; the browser outlives us
	go func() { _ = cmd.Wait() }()
	return nil
}
