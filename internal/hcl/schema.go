package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level items of a
// settings file.
type fileRoot struct {
	Metadata *MetadataBlock `hcl:"metadata,block"`
	Publish  *PublishBlock  `hcl:"publish,block"`
	Symbols  hcl.Expression `hcl:"symbols,optional"`
	Remain   hcl.Body       `hcl:",remain"`
}

// MetadataBlock is the `metadata { ... }` block.
type MetadataBlock struct {
	Name    string `hcl:"name,optional"`
	Version string `hcl:"version,optional"`
	Layout  string `hcl:"layout,optional"`
}

// PublishBlock is the `publish { ... }` block.
type PublishBlock struct {
	URL       string         `hcl:"url,optional"`
	Namespace string         `hcl:"namespace,optional"`
	Event     string         `hcl:"event,optional"`
	Timeout   hcl.Expression `hcl:"timeout,optional"`
}
