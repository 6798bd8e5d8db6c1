package backend

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/c2fo/azfs"
)

// TokenCredential returns the explicit token credential of cred, or the ambient identity when none was given.
func TokenCredential(cred azfs.Credential) (azcore.TokenCredential, error) {
	if cred.Token != nil {
		return cred.Token, nil
	}
	c, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, AuthError(err)
	}
	return c, nil
}

// AuthError marks a credential construction failure as an authentication error.
func AuthError(err error) error {
	return fmt.Errorf("credential error: %w: %w", azfs.ErrAuthentication, err)
}
