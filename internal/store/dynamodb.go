package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/sentiscore/internal/apperr"
)

const (
	DefaultDocumentsTable = "Documents"
	documentKey           = "id"
)

type DynamoDBOptions struct {
	Region   string
	Endpoint string
	Table    string
}

// DynamoDBAPI is the subset of the DynamoDB client the gateway uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoDBGateway stores each document as one item keyed by id with one
// string attribute per document field.
type DynamoDBGateway struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBGateway(ctx context.Context, opts DynamoDBOptions) (*DynamoDBGateway, error) {
	slog.Info("[DynamoDBGateway] Initializing AWS Config...",
		slog.String("region", opts.Region))

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("[DynamoDBGateway] failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	gw := newDynamoDBGateway(client, opts.Table)
	if err := gw.Ping(ctx); err != nil {
		return nil, fmt.Errorf("[DynamoDBGateway] table %s is not reachable: %w", gw.table, err)
	}

	slog.Info("[DynamoDBGateway] AWS Config Initialized", slog.String("table", gw.table))
	return gw, nil
}

func newDynamoDBGateway(client DynamoDBAPI, table string) *DynamoDBGateway {
	if table == "" {
		table = DefaultDocumentsTable
	}
	return &DynamoDBGateway{client: client, table: table}
}

func (g *DynamoDBGateway) itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		documentKey: &types.AttributeValueMemberS{Value: id},
	}
}

func (g *DynamoDBGateway) Get(ctx context.Context, id, field string) (string, error) {
	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(g.table),
		Key:                      g.itemKey(id),
		ProjectionExpression:     aws.String("#f"),
		ExpressionAttributeNames: map[string]string{"#f": field},
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return "", apperr.Store(fmt.Sprintf("failed to read field %q of document %q", field, id), err)
	}

	attr, ok := out.Item[field]
	if !ok {
		return "", apperr.NotFound(fmt.Sprintf("document %q has no field %q", id, field)).
			WithContext("document_id", id)
	}

	var value string
	if err := attributevalue.Unmarshal(attr, &value); err != nil {
		return "", apperr.Store(fmt.Sprintf("field %q of document %q is not a string", field, id), err)
	}
	return value, nil
}

func (g *DynamoDBGateway) Put(ctx context.Context, id, field, value string) error {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return apperr.Store(fmt.Sprintf("failed to encode field %q of document %q", field, id), err)
	}

	_, err = g.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(g.table),
		Key:                       g.itemKey(id),
		UpdateExpression:          aws.String("SET #f = :v"),
		ExpressionAttributeNames:  map[string]string{"#f": field},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": av},
	})
	if err != nil {
		return apperr.Store(fmt.Sprintf("failed to write field %q of document %q", field, id), err)
	}
	return nil
}

func (g *DynamoDBGateway) Ping(ctx context.Context) error {
	_, err := g.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(g.table),
	})
	return err
}

func (g *DynamoDBGateway) Close() {}
