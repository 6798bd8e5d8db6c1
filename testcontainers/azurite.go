package testcontainers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/azure/azurite"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azfile"
)

// AzuriteImage is the emulator image the suite runs.
const AzuriteImage = "mcr.microsoft.com/azure-storage/azurite:latest"

// Azurite holds the endpoints of a running emulator.  Service URLs include the account path segment, ie:
// http://127.0.0.1:32768/devstoreaccount1
type Azurite struct {
	BlobURL  string
	QueueURL string
	TableURL string
}

// Account is the emulator's well known storage account.
const Account = azurite.AccountName

// StartAzurite runs an emulator with the blob, queue and table services and removes it when t ends.
func StartAzurite(t *testing.T) *Azurite {
	ctx := context.Background()
	is := require.New(t)

	ctr, err := azurite.Run(ctx, AzuriteImage,
		testcontainers.WithName("azfs-azurite-"+uuid.NewString()[:8]),
		azurite.WithEnabledServices(azurite.BlobService, azurite.QueueService, azurite.TableService),
	)
	testcontainers.CleanupContainer(t, ctr)
	is.NoError(err)

	a := &Azurite{}
	for _, svc := range []struct {
		dst *string
		get func(context.Context) (string, error)
	}{
		{&a.BlobURL, ctr.BlobServiceURL},
		{&a.QueueURL, ctr.QueueServiceURL},
		{&a.TableURL, ctr.TableServiceURL},
	} {
		ep, err := svc.get(ctx)
		is.NoError(err)
		u, err := url.JoinPath(ep, azurite.AccountName)
		is.NoError(err)
		*svc.dst = u
	}
	return a
}

// Credential returns the shared key credential of the emulator account.
func (a *Azurite) Credential() azfs.Credential {
	return azfs.Credential{AccountKey: azurite.AccountKey}
}

// ConnectionString returns a connection string addressing the emulator's services.
func (a *Azurite) ConnectionString() string {
	return strings.Join([]string{
		"DefaultEndpointsProtocol=http",
		"AccountName=" + azurite.AccountName,
		"AccountKey=" + azurite.AccountKey,
		"BlobEndpoint=" + a.BlobURL,
		"QueueEndpoint=" + a.QueueURL,
		"TableEndpoint=" + a.TableURL,
	}, ";") + ";"
}

// Client returns an azfile client whose blob and queue handles talk to the emulator.
func (a *Azurite) Client(t *testing.T) *azfile.Client {
	c, err := azfile.NewClient(
		azfile.WithCredential(a.Credential()),
		azfile.WithServiceURL(azfs.KindBlob, a.BlobURL),
		azfile.WithServiceURL(azfs.KindQueue, a.QueueURL),
	)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// NewContainer creates a uniquely named blob container and returns its https URL in the emulator account's
// namespace, ie: https://devstoreaccount1.blob.core.windows.net/azfs-1a2b3c4d
func (a *Azurite) NewContainer(t *testing.T) string {
	ctx := context.Background()
	is := require.New(t)

	cred, err := azblob.NewSharedKeyCredential(azurite.AccountName, azurite.AccountKey)
	is.NoError(err)
	cli, err := azblob.NewClientWithSharedKeyCredential(a.BlobURL+"/", cred, nil)
	is.NoError(err)

	name := "azfs-" + uuid.NewString()[:8]
	_, err = cli.CreateContainer(ctx, name, nil)
	is.NoError(err)
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s", azurite.AccountName, name)
}
