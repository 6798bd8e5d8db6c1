package azfs

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/cespare/xxhash/v2"
)

// CredentialMode says which of the Credential fields governs authentication.
type CredentialMode int

const (
	// CredentialAmbient uses the environment-derived identity (azidentity.DefaultAzureCredential).
	CredentialAmbient CredentialMode = iota
	// CredentialToken uses Credential.Token.
	CredentialToken
	// CredentialSharedKey uses the storage account key in Credential.AccountKey.
	CredentialSharedKey
	// CredentialConnectionString uses Credential.ConnectionString.
	CredentialConnectionString
)

// Credential describes how backends authenticate.  At most one field may be set; the zero value means ambient
// identity.
type Credential struct {
	Token            azcore.TokenCredential
	AccountKey       string
	ConnectionString string
}

// Validate returns an error wrapping ErrInvalidArgument when more than one credential source is set.
func (c Credential) Validate() error {
	set := 0
	if c.Token != nil {
		set++
	}
	if c.AccountKey != "" {
		set++
	}
	if c.ConnectionString != "" {
		set++
	}
	if set > 1 {
		return fmt.Errorf("only one of token credential, account key or connection string may be set: %w", ErrInvalidArgument)
	}
	return nil
}

// Mode returns the governing credential source.
func (c Credential) Mode() CredentialMode {
	switch {
	case c.Token != nil:
		return CredentialToken
	case c.AccountKey != "":
		return CredentialSharedKey
	case c.ConnectionString != "":
		return CredentialConnectionString
	default:
		return CredentialAmbient
	}
}

// Fingerprint returns a hashable identity for the credential.  Secrets are hashed, token credentials are identified
// by their dynamic type and address, so two distinct credential objects never share a fingerprint.
func (c Credential) Fingerprint() string {
	switch c.Mode() {
	case CredentialToken:
		v := reflect.ValueOf(c.Token)
		if v.Kind() == reflect.Pointer {
			return fmt.Sprintf("token:%T:%x", c.Token, v.Pointer())
		}
		return fmt.Sprintf("token:%T:%x", c.Token, xxhash.Sum64String(fmt.Sprintf("%#v", c.Token)))
	case CredentialSharedKey:
		return "key:" + strconv.FormatUint(xxhash.Sum64String(c.AccountKey), 16)
	case CredentialConnectionString:
		return "conn:" + strconv.FormatUint(xxhash.Sum64String(c.ConnectionString), 16)
	default:
		return "ambient"
	}
}

// String never prints secret material.
func (c Credential) String() string {
	return c.Fingerprint()
}

// ConnectionStringValue returns the value of key in an Azure storage connection string, ie: AccountName.
func ConnectionStringValue(connectionString, key string) string {
	for _, part := range strings.Split(connectionString, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
