package azpath

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/utils"
)

// Protocols accepted by Decode.
const (
	ProtocolHTTPS = "https"
	ProtocolHTTP  = "http"
	ProtocolWASB  = "wasb"
	ProtocolWASBS = "wasbs"
	ProtocolABFS  = "abfs"
	ProtocolABFSS = "abfss"
)

// DefaultEndpointSuffix is the public Azure cloud suffix.
const DefaultEndpointSuffix = "core.windows.net"

// EndpointSuffixes lists the Azure cloud endpoint suffixes Decode recognizes.
var EndpointSuffixes = []string{
	"core.windows.net",
	"core.chinacloudapi.cn",
	"core.usgovcloudapi.net",
	"core.cloudapi.de",
}

var (
	accountRe   = regexp.MustCompile(`^[a-z0-9]{3,24}$`)
	containerRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9]|-[a-z0-9]){2,62}$`)
	tableRe     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{2,62}$`)

	// reserved blob containers
	specialContainers = []string{"$root", "$logs", "$web"}
)

// StoragePath is the decoded identity of a storage URL.  It is a value type; the derive methods return copies.
type StoragePath struct {
	Account        string
	Kind           azfs.Kind
	Container      string
	BlobPath       string
	Protocol       string
	EndpointSuffix string

	// IsDir is set when the URL ends with a slash or addresses the container root.
	IsDir bool
}

// Decode parses a storage URL.  Query strings and fragments (ie: SAS tokens) are dropped.  Failures wrap
// azfs.ErrInvalidPath.  Decode performs no I/O.
func Decode(raw string) (*StoragePath, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalid(raw, "path is blank")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q: %w: %w", raw, azfs.ErrInvalidPath, err)
	}
	if u.Opaque != "" {
		return nil, invalid(raw, "opaque URL")
	}
	if u.Port() != "" {
		return nil, invalid(raw, "explicit ports are not supported")
	}

	p := &StoragePath{Protocol: strings.ToLower(u.Scheme)}
	var hostKind azfs.Kind
	p.Account, hostKind, p.EndpointSuffix, err = splitHost(strings.ToLower(u.Hostname()))
	if err != nil {
		return nil, invalid(raw, err.Error())
	}

	objectPath := utils.CollapseSlashes(u.Path)
	trailing := strings.HasSuffix(objectPath, "/")
	objectPath = utils.RemoveTrailingSlash(utils.RemoveLeadingSlash(objectPath))

	switch p.Protocol {
	case ProtocolHTTPS, ProtocolHTTP:
		if u.User != nil {
			return nil, invalid(raw, "user info is not allowed")
		}
		p.Kind = hostKind
		p.Container, p.BlobPath, _ = strings.Cut(objectPath, "/")
	case ProtocolWASB, ProtocolWASBS, ProtocolABFS, ProtocolABFSS:
		want := azfs.KindBlob
		if p.Protocol == ProtocolABFS || p.Protocol == ProtocolABFSS {
			want = azfs.KindDataLake
		}
		if hostKind != want {
			return nil, invalid(raw, fmt.Sprintf("%s URLs must use the %s endpoint", p.Protocol, want))
		}
		if u.User == nil {
			return nil, invalid(raw, "missing container@ in authority")
		}
		if _, hasPassword := u.User.Password(); hasPassword {
			return nil, invalid(raw, "user info is not allowed")
		}
		p.Kind = hostKind
		p.Container = u.User.Username()
		p.BlobPath = objectPath
	default:
		return nil, invalid(raw, fmt.Sprintf("unsupported protocol %q", u.Scheme))
	}

	if p.Container == "" {
		return nil, invalid(raw, "missing container")
	}
	if err := validateContainer(p.Kind, p.Container); err != nil {
		return nil, invalid(raw, err.Error())
	}

	switch p.Kind {
	case azfs.KindQueue, azfs.KindTable:
		if p.BlobPath != "" {
			return nil, invalid(raw, fmt.Sprintf("%s paths take exactly one segment", p.Kind))
		}
	default:
		p.IsDir = trailing || p.BlobPath == ""
	}

	return p, nil
}

// MustDecode is like Decode but panics on error.  Intended for tests and constant URLs.
func MustDecode(raw string) *StoragePath {
	p, err := Decode(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func splitHost(host string) (account string, kind azfs.Kind, suffix string, err error) {
	if host == "" {
		return "", 0, "", fmt.Errorf("missing host")
	}
	account, rest, ok := strings.Cut(host, ".")
	if !ok {
		return "", 0, "", fmt.Errorf("host %q is not a storage endpoint", host)
	}
	if !accountRe.MatchString(account) {
		return "", 0, "", fmt.Errorf("invalid account name %q", account)
	}
	label, suffix, ok := strings.Cut(rest, ".")
	if !ok {
		return "", 0, "", fmt.Errorf("host %q is not a storage endpoint", host)
	}
	kind, err = azfs.ParseKind(label)
	if err != nil {
		return "", 0, "", fmt.Errorf("unknown service %q in host %q", label, host)
	}
	if !slices.Contains(EndpointSuffixes, suffix) {
		return "", 0, "", fmt.Errorf("unknown endpoint suffix %q", suffix)
	}
	return account, kind, suffix, nil
}

func validateContainer(kind azfs.Kind, name string) error {
	switch kind {
	case azfs.KindTable:
		if !tableRe.MatchString(name) {
			return fmt.Errorf("invalid table name %q", name)
		}
	case azfs.KindBlob:
		if slices.Contains(specialContainers, name) {
			return nil
		}
		fallthrough
	default:
		if len(name) > 63 || !containerRe.MatchString(name) {
			return fmt.Errorf("invalid %s container name %q", kind, name)
		}
	}
	return nil
}

func invalid(raw, reason string) error {
	return fmt.Errorf("%q: %s: %w", raw, reason, azfs.ErrInvalidPath)
}

// ServiceURL returns the service endpoint, ie: https://acct.blob.core.windows.net
func (p StoragePath) ServiceURL() string {
	scheme := ProtocolHTTPS
	if p.Protocol == ProtocolHTTP {
		scheme = ProtocolHTTP
	}
	return fmt.Sprintf("%s://%s.%s.%s", scheme, p.Account, p.Kind, p.EndpointSuffix)
}

// ContainerURL returns the https URL of the container, without a trailing slash.
func (p StoragePath) ContainerURL() string {
	return p.ServiceURL() + "/" + p.Container
}

// URL reconstructs the path in its original protocol.  Decode(p.URL()) yields p again.
func (p StoragePath) URL() string {
	rel := p.BlobPath
	if p.IsDir && rel != "" {
		rel += "/"
	}
	switch p.Protocol {
	case ProtocolWASB, ProtocolWASBS, ProtocolABFS, ProtocolABFSS:
		return fmt.Sprintf("%s://%s@%s.%s.%s/%s", p.Protocol, p.Container, p.Account, p.Kind, p.EndpointSuffix, rel)
	}
	if p.Kind.IsFileKind() {
		return p.ContainerURL() + "/" + rel
	}
	return p.ContainerURL()
}

// String implements fmt.Stringer
func (p StoragePath) String() string {
	return p.URL()
}

// HasWildcard reports whether the blob path contains glob metacharacters.
func (p StoragePath) HasWildcard() bool {
	return strings.ContainsAny(p.BlobPath, "*?[")
}

// Name returns the last segment of the blob path, or the container name at the root.
func (p StoragePath) Name() string {
	if p.BlobPath == "" {
		return p.Container
	}
	return utils.BaseName(p.BlobPath)
}

// Prefix returns the blob path as a listing prefix: empty at the container root, otherwise with a trailing slash.
func (p StoragePath) Prefix() string {
	return utils.EnsureTrailingSlash(p.BlobPath)
}

// WithBlobPath returns a copy of p addressing rel inside the same container.  A trailing slash marks a directory.
func (p StoragePath) WithBlobPath(rel string) StoragePath {
	rel = utils.CollapseSlashes(rel)
	p.IsDir = strings.HasSuffix(rel, "/")
	p.BlobPath = utils.RemoveTrailingSlash(utils.RemoveLeadingSlash(rel))
	if p.BlobPath == "" && p.Kind.IsFileKind() {
		p.IsDir = true
	}
	return p
}

// Join returns a copy of p with rel appended to its blob path.
func (p StoragePath) Join(rel string) StoragePath {
	if p.BlobPath == "" {
		return p.WithBlobPath(rel)
	}
	return p.WithBlobPath(p.BlobPath + "/" + rel)
}

// SameObject reports whether p and o address the same object, ignoring the protocol used to name it.
func (p StoragePath) SameObject(o StoragePath) bool {
	return p.Account == o.Account && p.Kind == o.Kind && p.EndpointSuffix == o.EndpointSuffix &&
		p.Container == o.Container && p.BlobPath == o.BlobPath
}
