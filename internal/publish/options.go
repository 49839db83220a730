package publish

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vk/zmkgrid/internal/config"
)

const defaultPath = "/socket.io/"

// Options configures a Publisher.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// OptionsFromSettings copies publisher settings, defaults already applied.
func OptionsFromSettings(p config.Publish) Options {
	return Options{
		URL:       p.URL,
		Namespace: p.Namespace,
		Event:     p.Event,
		Timeout:   p.Timeout,
	}
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = config.DefaultNamespace
	}
	if o.Event == "" {
		o.Event = config.DefaultEvent
	}
	if o.Timeout <= 0 {
		o.Timeout = config.DefaultPublishTimeout
	}
	return o
}

// endpoint splits a socket.io URL into the manager base URL and the engine.io
// path. An empty path means the socket.io default.
func endpoint(raw string) (base, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return "", "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("URL %q has no host", raw)
	}

	path = u.Path
	if path == "" || path == "/" {
		path = defaultPath
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), path, nil
}
