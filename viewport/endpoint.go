package viewport

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DefaultEndpoint is the fallback noVNC address used when a session carries
// no per-session desktop metadata.
const DefaultEndpoint = "http://localhost:6080/vnc.html?autoconnect=true&resize=scale&host=localhost&port=6080&path=websockify"

// ResolveEndpoint picks the remote desktop address for a session. Sessions
// backed by their own VM publish a noVNC port under the nested "vm" metadata
// key; everything else uses the default. The returned URL always carries an
// autoconnect parameter.
func ResolveEndpoint(defaultURL string, meta map[string]any) string {
	if port, ok := novncPort(meta); ok {
		return fmt.Sprintf("http://localhost:%d/vnc.html?autoconnect=true&resize=scale", port)
	}
	return ensureAutoconnect(defaultURL)
}

// novncPort digs the per-session noVNC port out of the metadata map. JSON
// numbers decode as float64; a string port is tolerated as well.
func novncPort(meta map[string]any) (int, bool) {
	vm, ok := meta["vm"].(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := vm["novnc_port"].(type) {
	case float64:
		if v > 0 {
			return int(v), true
		}
	case int:
		if v > 0 {
			return v, true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// ensureAutoconnect guarantees the autoconnect query parameter is present
func ensureAutoconnect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("autoconnect") == "" {
		q.Set("autoconnect", "true")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ReconnectURL derives a cache-busting variant of the endpoint for forcing
// the remote view to re-establish its connection
func ReconnectURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}
