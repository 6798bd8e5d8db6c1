package azfile

import (
	"log/slog"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
)

const (
	optionNameLogger     = "logger"
	optionNameCredential = "credential"
	optionNameOptions    = "options"
	optionNameBackend    = "backend"
	optionNameRegistry   = "registry"
	optionNameServiceURL = "serviceURL"
)

// WithLogger returns a logger implementation of NewClientOption
//
// WithLogger sets the structured logger operations are traced to.  The default discards everything.
func WithLogger(l *slog.Logger) options.NewClientOption[Client] {
	return &loggerOpt{logger: l}
}

type loggerOpt struct {
	logger *slog.Logger
}

// Apply applies the logger to the client
func (o *loggerOpt) Apply(c *Client) {
	if o.logger != nil {
		c.logger = o.logger
	}
}

// NewClientOptionName returns the name of the option
func (o *loggerOpt) NewClientOptionName() string {
	return optionNameLogger
}

// WithCredential returns a credential implementation of NewClientOption
//
// WithCredential sets the credential every backend handle is built with.  It takes precedence over WithOptions.
func WithCredential(cred azfs.Credential) options.NewClientOption[Client] {
	return &credentialOpt{cred: cred}
}

type credentialOpt struct {
	cred azfs.Credential
}

// Apply applies the credential to the client
func (o *credentialOpt) Apply(c *Client) {
	c.credential = o.cred
	c.credentialSet = true
}

// NewClientOptionName returns the name of the option
func (o *credentialOpt) NewClientOptionName() string {
	return optionNameCredential
}

// WithOptions returns an Options implementation of NewClientOption
//
// WithOptions configures the client from an Options value, ie: the result of NewOptions.
func WithOptions(opts Options) options.NewClientOption[Client] {
	return &optionsOpt{opts: opts}
}

type optionsOpt struct {
	opts Options
}

// Apply applies the options to the client
func (o *optionsOpt) Apply(c *Client) {
	opts := o.opts
	c.options = &opts
}

// NewClientOptionName returns the name of the option
func (o *optionsOpt) NewClientOptionName() string {
	return optionNameOptions
}

// WithBackend returns a backend override implementation of NewClientOption
//
// WithBackend serves every path of kind from b instead of the SDK backend, ie: an in-memory backend in tests.
func WithBackend(kind azfs.Kind, b azfs.Backend) options.NewClientOption[Client] {
	return &backendOpt{kind: kind, backend: b}
}

type backendOpt struct {
	kind    azfs.Kind
	backend azfs.Backend
}

// Apply applies the backend override to the client
func (o *backendOpt) Apply(c *Client) {
	c.overrides[o.kind] = o.backend
}

// NewClientOptionName returns the name of the option
func (o *backendOpt) NewClientOptionName() string {
	return optionNameBackend
}

// WithRegistry returns a registry implementation of NewClientOption
//
// WithRegistry shares a handle cache between clients.  By default each client owns its registry.
func WithRegistry(r *backend.Registry) options.NewClientOption[Client] {
	return &registryOpt{registry: r}
}

type registryOpt struct {
	registry *backend.Registry
}

// Apply applies the registry to the client
func (o *registryOpt) Apply(c *Client) {
	c.registry = o.registry
}

// NewClientOptionName returns the name of the option
func (o *registryOpt) NewClientOptionName() string {
	return optionNameRegistry
}

// WithServiceURL returns a service URL implementation of NewClientOption
//
// WithServiceURL points every handle of kind at serviceURL, ie: the Azurite emulator.
func WithServiceURL(kind azfs.Kind, serviceURL string) options.NewClientOption[Client] {
	return &serviceURLOpt{kind: kind, url: serviceURL}
}

type serviceURLOpt struct {
	kind azfs.Kind
	url  string
}

// Apply applies the service URL to the client
func (o *serviceURLOpt) Apply(c *Client) {
	c.serviceURLs[o.kind] = o.url
}

// NewClientOptionName returns the name of the option
func (o *serviceURLOpt) NewClientOptionName() string {
	return optionNameServiceURL
}
