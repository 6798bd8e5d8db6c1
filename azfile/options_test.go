package azfile

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs"
)

type optionsTestSuite struct {
	suite.Suite
}

func (s *optionsTestSuite) TestNewOptions() {
	s.T().Setenv("AZFS_STORAGE_ACCOUNT", "acct")
	s.T().Setenv("AZFS_STORAGE_ACCESS_KEY", "a2V5")
	s.T().Setenv("AZFS_CONNECTION_STRING", "")
	s.T().Setenv("AZFS_TENANT_ID", "tenant")
	s.T().Setenv("AZFS_CLIENT_ID", "client")
	s.T().Setenv("AZFS_CLIENT_SECRET", "secret")
	s.T().Setenv("AZFS_BATCH_CONCURRENCY", "8")

	o := NewOptions()
	s.Equal("acct", o.AccountName)
	s.Equal("a2V5", o.AccountKey)
	s.Equal("tenant", o.TenantID)
	s.Equal("client", o.ClientID)
	s.Equal("secret", o.ClientSecret)
	s.Equal(8, o.BatchConcurrency)

	s.T().Setenv("AZFS_BATCH_CONCURRENCY", "many")
	s.Zero(NewOptions().BatchConcurrency)
}

func (s *optionsTestSuite) TestCredential() {
	cred, err := (&Options{TenantID: "tenant", ClientID: "client", ClientSecret: "secret", AccountKey: "a2V5"}).Credential()
	s.Require().NoError(err)
	s.Equal(azfs.CredentialToken, cred.Mode(), "a service principal wins over an account key")
	s.IsType(&azidentity.ClientSecretCredential{}, cred.Token)

	cred, err = (&Options{AccountKey: "a2V5", ConnectionString: "AccountName=acct"}).Credential()
	s.Require().NoError(err)
	s.Equal(azfs.CredentialSharedKey, cred.Mode())

	cred, err = (&Options{ConnectionString: "AccountName=acct"}).Credential()
	s.Require().NoError(err)
	s.Equal(azfs.CredentialConnectionString, cred.Mode())

	cred, err = (&Options{}).Credential()
	s.Require().NoError(err)
	s.Equal(azfs.CredentialAmbient, cred.Mode())

	_, err = (&Options{TenantID: "tenant", ClientSecret: "secret"}).Credential()
	s.ErrorIs(err, azfs.ErrInvalidArgument)
}

func (s *optionsTestSuite) TestNewClientReadsEnvironment() {
	s.T().Setenv("AZFS_STORAGE_ACCOUNT", "")
	s.T().Setenv("AZFS_STORAGE_ACCESS_KEY", "")
	s.T().Setenv("AZFS_CONNECTION_STRING", "UseDevelopmentStorage=true")
	s.T().Setenv("AZFS_TENANT_ID", "")
	s.T().Setenv("AZFS_CLIENT_ID", "")
	s.T().Setenv("AZFS_CLIENT_SECRET", "")
	s.T().Setenv("AZFS_BATCH_CONCURRENCY", "")

	c, err := NewClient()
	s.Require().NoError(err)
	s.Equal(azfs.CredentialConnectionString, c.credential.Mode())
	s.Equal(1, c.concurrency)
}

func TestOptions(t *testing.T) {
	suite.Run(t, new(optionsTestSuite))
}
