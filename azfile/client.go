package azfile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/grokify/mogo/log/slogutil"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azpath"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
)

// Client dispatches URL-addressed operations to the backend of the URL's storage kind.  It is safe for concurrent
// use.
type Client struct {
	registry      *backend.Registry
	credential    azfs.Credential
	credentialSet bool
	options       *Options
	concurrency   int
	logger        *slog.Logger

	overrides   map[azfs.Kind]azfs.Backend
	serviceURLs map[azfs.Kind]string
}

// NewClient returns a Client.  Without WithCredential or WithOptions the credential is read from the environment
// (see NewOptions).
func NewClient(opts ...options.NewClientOption[Client]) (*Client, error) {
	c := &Client{
		concurrency: 1,
		logger:      slogutil.Null(),
		overrides:   map[azfs.Kind]azfs.Backend{},
		serviceURLs: map[azfs.Kind]string{},
	}
	options.ApplyOptions(c, opts...)

	if c.options == nil && !c.credentialSet {
		c.options = NewOptions()
	}
	if c.options != nil {
		if !c.credentialSet {
			cred, err := c.options.Credential()
			if err != nil {
				return nil, err
			}
			c.credential = cred
		}
		if c.options.BatchConcurrency > 0 {
			c.concurrency = c.options.BatchConcurrency
		}
	}
	if err := c.credential.Validate(); err != nil {
		return nil, err
	}

	if c.registry == nil {
		c.registry = backend.NewRegistry(c.logger)
	}
	for kind, b := range c.overrides {
		c.registry.Override(kind, b)
	}
	for kind, u := range c.serviceURLs {
		c.registry.SetServiceURL(kind, u)
	}

	c.logger.Debug("azfile client ready", slog.String("credential", c.credential.String()),
		slog.Int("concurrency", c.concurrency))
	return c, nil
}

// Close drops every cached backend handle.
func (c *Client) Close() {
	c.registry.Close()
}

// resolve decodes raw and returns its backend.  Table Storage URLs are rejected; they are served by the
// tablestorage package.
func (c *Client) resolve(op, raw string) (*azpath.StoragePath, azfs.Backend, error) {
	p, err := azpath.Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	if p.Kind == azfs.KindTable {
		return nil, nil, azfs.NewPathError(op, raw, azfs.ErrUnsupportedOperation,
			fmt.Errorf("table storage is served by the tablestorage package"))
	}
	if err := c.checkAccount(p); err != nil {
		return nil, nil, azfs.NewPathError(op, raw, azfs.ErrAuthentication, err)
	}

	b, err := c.registry.GetOrCreate(backend.Endpoint{
		Kind:           p.Kind,
		Account:        p.Account,
		EndpointSuffix: p.EndpointSuffix,
	}, c.credential)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Debug("dispatch",
		slog.String("op", op),
		slog.String("kind", p.Kind.String()),
		slog.String("account", p.Account),
		slog.String("container", p.Container),
		slog.String("path", p.BlobPath),
	)
	return p, b, nil
}

// checkAccount refuses to send a secret bound to one account to another.  A connection string names its account;
// an account key configured through Options belongs to Options.AccountName.
func (c *Client) checkAccount(p *azpath.StoragePath) error {
	if c.credential.Mode() == azfs.CredentialConnectionString {
		account := azfs.ConnectionStringValue(c.credential.ConnectionString, "AccountName")
		if account != "" && !strings.EqualFold(account, p.Account) {
			return fmt.Errorf("connection string belongs to %q", account)
		}
		return nil
	}
	if c.credentialSet || c.options == nil || c.options.AccountName == "" {
		return nil
	}
	if c.credential.Mode() == azfs.CredentialSharedKey && c.options.AccountName != p.Account {
		return fmt.Errorf("account key belongs to %q", c.options.AccountName)
	}
	return nil
}

// requireObject rejects paths that cannot name a single object.
func requireObject(op, raw string, p *azpath.StoragePath) error {
	switch {
	case p.HasWildcard():
		return azfs.NewPathError(op, raw, azfs.ErrInvalidArgument, fmt.Errorf("wildcards are not allowed"))
	case p.Kind.IsFileKind() && p.IsDir:
		return azfs.NewPathError(op, raw, azfs.ErrInvalidArgument, fmt.Errorf("path names a directory"))
	}
	return nil
}
