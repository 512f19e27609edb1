// Package content resolves content identifiers against an IPFS node.
// The ledger itself stores references verbatim and never dereferences
// them; this client exists so the API layer can attach the
// human-readable metadata document to read responses, best-effort.
package content

import (
	"encoding/json"
	"fmt"
	"io"

	shell "github.com/ipfs/go-ipfs-api"
)

// Metadata is the off-ledger task document. Fields beyond these are
// passed through untouched in Raw.
type Metadata struct {
	Description string          `json:"description"`
	Attachments []string        `json:"attachments,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// Resolver fetches documents by content identifier.
type Resolver interface {
	Resolve(cid string) (*Metadata, error)
}

type Client struct {
	sh *shell.Shell
}

var _ Resolver = (*Client)(nil)

// NewClient connects to the IPFS HTTP API at addr (host:port or
// multiaddr).
func NewClient(addr string) *Client {
	return &Client{sh: shell.NewShell(addr)}
}

// Resolve fetches and decodes the metadata document behind the cid.
func (c *Client) Resolve(cid string) (*Metadata, error) {
	reader, err := c.sh.Cat(cid)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s from IPFS: %w", cid, err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("error reading %s from IPFS: %w", cid, err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("error decoding metadata %s: %w", cid, err)
	}
	meta.Raw = raw
	return &meta, nil
}
