package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamoDB keeps items in memory and records the last inputs.
type fakeDynamoDB struct {
	mu          sync.Mutex
	items       map[string]map[string]types.AttributeValue
	err         error
	lastGet     *dynamodb.GetItemInput
	lastUpdate  *dynamodb.UpdateItemInput
	describeErr error
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamoDB) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastGet = in
	if f.err != nil {
		return nil, f.err
	}

	id := in.Key[documentKey].(*types.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	field := in.ExpressionAttributeNames["#f"]
	projected := map[string]types.AttributeValue{}
	if v, ok := item[field]; ok {
		projected[field] = v
	}
	return &dynamodb.GetItemOutput{Item: projected}, nil
}

func (f *fakeDynamoDB) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate = in
	if f.err != nil {
		return nil, f.err
	}

	id := in.Key[documentKey].(*types.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		item = map[string]types.AttributeValue{}
		f.items[id] = item
	}
	item[in.ExpressionAttributeNames["#f"]] = in.ExpressionAttributeValues[":v"]
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamoDB) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, f.describeErr
}

func TestDynamoDBGateway_PutThenGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamoDB()
	gw := newDynamoDBGateway(fake, "")

	require.NoError(t, gw.Put(ctx, "doc-1", "sentiment", `{"sentiments":[]}`))
	assert.Equal(t, DefaultDocumentsTable, aws.ToString(fake.lastUpdate.TableName))
	assert.Equal(t, "SET #f = :v", aws.ToString(fake.lastUpdate.UpdateExpression))

	got, err := gw.Get(ctx, "doc-1", "sentiment")
	require.NoError(t, err)
	assert.Equal(t, `{"sentiments":[]}`, got)
	assert.True(t, aws.ToBool(fake.lastGet.ConsistentRead))
}

func TestDynamoDBGateway_GetMissing(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamoDB()
	gw := newDynamoDBGateway(fake, "Docs")

	_, err := gw.Get(ctx, "unknown", "nlp")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, gw.Put(ctx, "doc-1", "sentiment", "{}"))
	_, err = gw.Get(ctx, "doc-1", "nlp")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "Docs", aws.ToString(fake.lastGet.TableName))
}

func TestDynamoDBGateway_NonStringField(t *testing.T) {
	fake := newFakeDynamoDB()
	fake.items["doc-1"] = map[string]types.AttributeValue{
		"nlp": &types.AttributeValueMemberN{Value: "42"},
	}
	gw := newDynamoDBGateway(fake, "")

	_, err := gw.Get(context.Background(), "doc-1", "nlp")
	assert.True(t, apperr.IsKind(err, apperr.KindStore))
}

func TestDynamoDBGateway_ClientErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamoDB()
	fake.err = errors.New("ProvisionedThroughputExceededException")
	gw := newDynamoDBGateway(fake, "")

	_, err := gw.Get(ctx, "doc-1", "nlp")
	assert.True(t, apperr.IsKind(err, apperr.KindStore))

	err = gw.Put(ctx, "doc-1", "sentiment", "{}")
	assert.True(t, apperr.IsKind(err, apperr.KindStore))
}

func TestDynamoDBGateway_Ping(t *testing.T) {
	fake := newFakeDynamoDB()
	gw := newDynamoDBGateway(fake, "")
	assert.NoError(t, gw.Ping(context.Background()))

	fake.describeErr = errors.New("ResourceNotFoundException")
	assert.Error(t, gw.Ping(context.Background()))
}
