// Package store adapts the shared distributed map that holds documents.
//
// Each document id owns a set of named string fields. Gateways give no
// transactional guarantee across calls: concurrent writers to the same
// field race and the last write wins.
package store

import (
	"context"
	"fmt"
)

// Gateway reads and writes single fields of a document.
type Gateway interface {
	// Get returns the raw value of field for document id. A missing
	// document or field is reported as an apperr not_found error.
	Get(ctx context.Context, id, field string) (string, error)
	// Put stores value under field for document id.
	Put(ctx context.Context, id, field, value string) error
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
	Close()
}

const (
	BackendValkey   = "valkey"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Options selects and configures a Gateway backend.
type Options struct {
	Backend  string
	Valkey   ValkeyOptions
	DynamoDB DynamoDBOptions
}

// Open builds the Gateway named by opts.Backend.
func Open(ctx context.Context, opts Options) (Gateway, error) {
	switch opts.Backend {
	case BackendValkey:
		return NewValkeyGateway(ctx, opts.Valkey)
	case BackendDynamoDB:
		return NewDynamoDBGateway(ctx, opts.DynamoDB)
	case BackendMemory:
		return NewMemoryGateway(), nil
	default:
		return nil, fmt.Errorf("[Store] unknown backend %q", opts.Backend)
	}
}
