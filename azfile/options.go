package azfile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/c2fo/azfs"
)

// Options holds the environment-level configuration of a Client.
type Options struct {
	// AccountName restricts AccountKey to one storage account.
	AccountName string

	// AccountKey holds the storage account key for shared key authentication
	AccountKey string

	// ConnectionString holds a storage account connection string
	ConnectionString string

	// TenantID holds the Azure service principal tenant id for authentication
	TenantID string

	// ClientID holds the Azure service principal client id for authentication
	ClientID string

	// ClientSecret holds the Azure service principal client secret for authentication
	ClientSecret string

	// BatchConcurrency is the default worker count of batched reads.
	BatchConcurrency int
}

// NewOptions reads Options from the AZFS_* environment variables.
func NewOptions() *Options {
	concurrency, _ := strconv.Atoi(os.Getenv("AZFS_BATCH_CONCURRENCY"))
	return &Options{
		AccountName:      os.Getenv("AZFS_STORAGE_ACCOUNT"),
		AccountKey:       os.Getenv("AZFS_STORAGE_ACCESS_KEY"),
		ConnectionString: os.Getenv("AZFS_CONNECTION_STRING"),
		TenantID:         os.Getenv("AZFS_TENANT_ID"),
		ClientID:         os.Getenv("AZFS_CLIENT_ID"),
		ClientSecret:     os.Getenv("AZFS_CLIENT_SECRET"),
		BatchConcurrency: concurrency,
	}
}

// Credential builds the azfs.Credential the options describe.  Service principal settings win over an
// account key, which wins over a connection string; with none of them set the ambient identity is used.
// A partially filled service principal is rejected.
func (o *Options) Credential() (azfs.Credential, error) {
	sp := 0
	for _, v := range []string{o.TenantID, o.ClientID, o.ClientSecret} {
		if v != "" {
			sp++
		}
	}

	switch {
	case sp == 3:
		cred, err := azidentity.NewClientSecretCredential(o.TenantID, o.ClientID, o.ClientSecret, nil)
		if err != nil {
			return azfs.Credential{}, fmt.Errorf("client secret credential: %w: %w", azfs.ErrAuthentication, err)
		}
		return azfs.Credential{Token: cred}, nil
	case sp > 0:
		return azfs.Credential{}, fmt.Errorf("tenant id, client id and client secret must be set together: %w",
			azfs.ErrInvalidArgument)
	case o.AccountKey != "":
		return azfs.Credential{AccountKey: o.AccountKey}, nil
	case o.ConnectionString != "":
		return azfs.Credential{ConnectionString: o.ConnectionString}, nil
	default:
		return azfs.Credential{}, nil
	}
}
