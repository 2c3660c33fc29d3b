package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/valkey-io/valkey-go"
)

const DefaultValkeyKeyPrefix = "document:"

type ValkeyOptions struct {
	Address   string
	Password  string
	UseTLS    bool
	KeyPrefix string
}

// ValkeyGateway stores each document as a hash whose fields are the
// document fields.
type ValkeyGateway struct {
	client valkey.Client
	prefix string
}

func NewValkeyGateway(ctx context.Context, opts ValkeyOptions) (*ValkeyGateway, error) {
	clientOpts := valkey.ClientOption{
		InitAddress: []string{
			opts.Address,
		},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyGateway] failed to create Valkey client: %w", err)
	}

	gw := newValkeyGateway(client, opts.KeyPrefix)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := gw.Ping(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyGateway] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyGateway] Successfully connected to valkey",
		slog.String("address", opts.Address))
	return gw, nil
}

func newValkeyGateway(client valkey.Client, prefix string) *ValkeyGateway {
	if prefix == "" {
		prefix = DefaultValkeyKeyPrefix
	}
	return &ValkeyGateway{client: client, prefix: prefix}
}

func (g *ValkeyGateway) key(id string) string {
	return g.prefix + id
}

func (g *ValkeyGateway) Get(ctx context.Context, id, field string) (string, error) {
	res := g.client.Do(ctx, g.client.B().Hget().Key(g.key(id)).Field(field).Build())

	value, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		return "", apperr.NotFound(fmt.Sprintf("document %q has no field %q", id, field)).
			WithContext("document_id", id)
	}
	if err != nil {
		logConnectionError("HGET", err)
		return "", apperr.Store(fmt.Sprintf("failed to read field %q of document %q", field, id), err)
	}
	return value, nil
}

func (g *ValkeyGateway) Put(ctx context.Context, id, field, value string) error {
	cmd := g.client.B().Hset().Key(g.key(id)).FieldValue().FieldValue(field, value).Build()
	if err := g.client.Do(ctx, cmd).Error(); err != nil {
		logConnectionError("HSET", err)
		return apperr.Store(fmt.Sprintf("failed to write field %q of document %q", field, id), err)
	}
	return nil
}

func (g *ValkeyGateway) Ping(ctx context.Context) error {
	return g.client.Do(ctx, g.client.B().Ping().Build()).Error()
}

func (g *ValkeyGateway) Close() {
	g.client.Close()
}

func logConnectionError(op string, err error) {
	if !isConnectionError(err) {
		return
	}
	slog.Warn("[ValkeyGateway] Connection problem, client will reconnect",
		slog.String("op", op),
		slog.String("error", err.Error()))
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
