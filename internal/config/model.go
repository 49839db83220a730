package config

import (
	"time"

	"github.com/vk/zmkgrid/internal/keymap"
)

// Publisher defaults.
const (
	DefaultNamespace      = "/"
	DefaultEvent          = "keymap:load"
	DefaultPublishTimeout = 10 * time.Second
)

// Settings is the unified, format-agnostic representation of a settings
// file. Every part is optional.
type Settings struct {
	Metadata *MetadataOverride
	Symbols  map[string]string
	Publish  *Publish
}

// MetadataOverride replaces fields of the default keymap metadata. Empty
// fields keep the default.
type MetadataOverride struct {
	Name    string
	Version string
	Layout  string
}

// Publish configures the socket.io publisher.
type Publish struct {
	URL       string
	Namespace string
	Event     string
	Timeout   time.Duration
}

// New returns empty settings.
func New() *Settings {
	return &Settings{Symbols: make(map[string]string)}
}

// Merge applies other on top of s.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}
	if other.Metadata != nil {
		if s.Metadata == nil {
			s.Metadata = &MetadataOverride{}
		}
		s.Metadata.apply(other.Metadata)
	}
	if s.Symbols == nil {
		s.Symbols = make(map[string]string, len(other.Symbols))
	}
	for k, v := range other.Symbols {
		s.Symbols[k] = v
	}
	if other.Publish != nil {
		if s.Publish == nil {
			s.Publish = &Publish{}
		}
		s.Publish.apply(other.Publish)
	}
}

// KeymapMetadata returns the default metadata with the overrides applied.
func (s *Settings) KeymapMetadata() keymap.Metadata {
	md := keymap.DefaultMetadata()
	if s == nil || s.Metadata == nil {
		return md
	}
	if s.Metadata.Name != "" {
		md.Name = s.Metadata.Name
	}
	if s.Metadata.Version != "" {
		md.Version = s.Metadata.Version
	}
	if s.Metadata.Layout != "" {
		md.Layout = s.Metadata.Layout
	}
	return md
}

// PublishOrDefault returns the publisher settings with defaults filled in.
// The URL stays empty when none was configured.
func (s *Settings) PublishOrDefault() Publish {
	p := Publish{
		Namespace: DefaultNamespace,
		Event:     DefaultEvent,
		Timeout:   DefaultPublishTimeout,
	}
	if s != nil && s.Publish != nil {
		p.apply(s.Publish)
	}
	return p
}

func (m *MetadataOverride) apply(o *MetadataOverride) {
	if o.Name != "" {
		m.Name = o.Name
	}
	if o.Version != "" {
		m.Version = o.Version
	}
	if o.Layout != "" {
		m.Layout = o.Layout
	}
}

func (p *Publish) apply(o *Publish) {
	if o.URL != "" {
		p.URL = o.URL
	}
	if o.Namespace != "" {
		p.Namespace = o.Namespace
	}
	if o.Event != "" {
		p.Event = o.Event
	}
	if o.Timeout > 0 {
		p.Timeout = o.Timeout
	}
}
