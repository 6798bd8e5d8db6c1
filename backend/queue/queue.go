package queue

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue/queueerror"
	"github.com/grokify/mogo/log/slogutil"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

// Name is the human readable name of the backend
const Name = "Azure Queue Storage"

// service limit for a single peek
const maxPeek = 32

// Client implements azfs.Backend for queues.  The container is the queue name; object names are ignored except
// in listings, where each pending message appears with its text as Name and its message id as FullPath.
type Client struct {
	client *azqueue.ServiceClient
	logger *slog.Logger
}

// New builds a Client for cfg.  It is registered as the backend.Factory for azfs.KindQueue.
func New(cfg backend.Config) (azfs.Backend, error) {
	var (
		c   *azqueue.ServiceClient
		err error
	)
	serviceURL := cfg.URL() + "/"
	switch cfg.Credential.Mode() {
	case azfs.CredentialConnectionString:
		c, err = azqueue.NewServiceClientFromConnectionString(cfg.Credential.ConnectionString, nil)
	case azfs.CredentialSharedKey:
		var cred *azqueue.SharedKeyCredential
		cred, err = azqueue.NewSharedKeyCredential(cfg.Account, cfg.Credential.AccountKey)
		if err != nil {
			return nil, backend.AuthError(err)
		}
		c, err = azqueue.NewServiceClientWithSharedKeyCredential(serviceURL, cred, nil)
	default:
		tc, terr := backend.TokenCredential(cfg.Credential)
		if terr != nil {
			return nil, terr
		}
		c, err = azqueue.NewServiceClient(serviceURL, tc, nil)
	}
	if err != nil {
		return nil, backend.AuthError(err)
	}
	return NewWithClient(c, cfg.Logger), nil
}

// NewWithClient wraps an existing azqueue.ServiceClient.
func NewWithClient(c *azqueue.ServiceClient, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slogutil.Null()
	}
	return &Client{client: c, logger: logger}
}

// List peeks at up to 32 pending messages without changing their visibility.
func (c *Client) List(ctx context.Context, queueName, _ string, _ bool) ([]azfs.ListingEntry, error) {
	resp, err := c.client.NewQueueClient(queueName).PeekMessages(ctx, &azqueue.PeekMessagesOptions{
		NumberOfMessages: to.Ptr(int32(maxPeek)),
	})
	if err != nil {
		return nil, mapError("list", queueName, err)
	}

	entries := make([]azfs.ListingEntry, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		if m == nil {
			continue
		}
		text := utils.Deref(m.MessageText)
		size := int64(len(text))
		entries = append(entries, azfs.ListingEntry{
			Name:         text,
			FullPath:     utils.Deref(m.MessageID),
			Size:         &size,
			LastModified: m.InsertionTime,
		})
	}
	return entries, nil
}

// Read receives one message and deletes it from the queue.  An empty queue returns an error wrapping
// azfs.ErrNotFound.
func (c *Client) Read(ctx context.Context, queueName, _ string) (io.ReadCloser, error) {
	qc := c.client.NewQueueClient(queueName)
	resp, err := qc.DequeueMessage(ctx, nil)
	if err != nil {
		return nil, mapError("read", queueName, err)
	}
	if len(resp.Messages) == 0 || resp.Messages[0] == nil {
		return nil, azfs.NewPathError("read", queueName, azfs.ErrNotFound, nil)
	}

	m := resp.Messages[0]
	if _, err := qc.DeleteMessage(ctx, utils.Deref(m.MessageID), utils.Deref(m.PopReceipt), nil); err != nil {
		return nil, mapError("read", queueName, err)
	}
	c.logger.Debug("message received", slog.String("queue", queueName), slog.String("id", utils.Deref(m.MessageID)))
	return io.NopCloser(strings.NewReader(utils.Deref(m.MessageText))), nil
}

// Write enqueues data as one message, creating the queue when it does not exist yet.
func (c *Client) Write(ctx context.Context, queueName, _ string, data []byte) error {
	qc := c.client.NewQueueClient(queueName)
	_, err := qc.EnqueueMessage(ctx, string(data), nil)
	if err != nil && queueerror.HasCode(err, queueerror.QueueNotFound) {
		if _, cerr := qc.Create(ctx, nil); cerr != nil && !queueerror.HasCode(cerr, queueerror.QueueAlreadyExists) {
			return mapError("write", queueName, cerr)
		}
		_, err = qc.EnqueueMessage(ctx, string(data), nil)
	}
	if err != nil {
		return mapError("write", queueName, err)
	}
	return nil
}

// Delete removes the whole queue.
func (c *Client) Delete(ctx context.Context, queueName, _ string, _ ...options.DeleteOption) error {
	if _, err := c.client.NewQueueClient(queueName).Delete(ctx, nil); err != nil {
		return mapError("delete", queueName, err)
	}
	return nil
}

// Properties reports the approximate number of pending messages as Size.
func (c *Client) Properties(ctx context.Context, queueName, _ string) (*azfs.Info, error) {
	resp, err := c.client.NewQueueClient(queueName).GetProperties(ctx, nil)
	if err != nil {
		return nil, mapError("properties", queueName, err)
	}
	info := &azfs.Info{
		Name:     queueName,
		Path:     queueName,
		Size:     int64(utils.Deref(resp.ApproximateMessagesCount)),
		Type:     azfs.InfoTypeQueue,
		Metadata: make(map[string]string, len(resp.Metadata)),
	}
	for k, v := range resp.Metadata {
		if v != nil {
			info.Metadata[strings.ToLower(k)] = *v
		}
	}
	return info, nil
}

func mapError(op, queueName string, err error) error {
	if queueerror.HasCode(err, queueerror.QueueNotFound, queueerror.MessageNotFound) {
		return azfs.NewPathError(op, queueName, azfs.ErrNotFound, err)
	}
	return backend.MapError(op, queueName, err)
}

func init() {
	backend.Register(azfs.KindQueue, New)
}

var _ azfs.Backend = (*Client)(nil)
