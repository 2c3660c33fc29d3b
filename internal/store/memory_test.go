package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/spacesedan/sentiscore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGateway_GetMissing(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()

	_, err := gw.Get(ctx, "doc-1", models.FieldNLP)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, gw.Put(ctx, "doc-1", models.FieldSentiment, "{}"))

	_, err = gw.Get(ctx, "doc-1", models.FieldNLP)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestMemoryGateway_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()

	require.NoError(t, gw.Put(ctx, "doc-1", models.FieldSentiment, "first"))
	require.NoError(t, gw.Put(ctx, "doc-1", models.FieldSentiment, "second"))

	got, err := gw.Get(ctx, "doc-1", models.FieldSentiment)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestMemoryGateway_SentimentRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()

	analysis := models.SentimentAnalysis{Sentiments: []models.CalculatedSentiment{
		{Average: 3, Scores: []int32{3, 3}},
		{Average: 0, Scores: []int32{}},
		{Average: -1.5, Scores: []int32{-3, 0}},
	}}

	encoded, err := json.Marshal(analysis)
	require.NoError(t, err)
	require.NoError(t, gw.Put(ctx, "doc-1", models.FieldSentiment, string(encoded)))

	raw, err := gw.Get(ctx, "doc-1", models.FieldSentiment)
	require.NoError(t, err)

	var decoded models.SentimentAnalysis
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, analysis, decoded)
}

func TestMemoryGateway_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", i%4)
			assert.NoError(t, gw.Put(ctx, id, models.FieldSentiment, fmt.Sprint(i)))
			_, err := gw.Get(ctx, id, models.FieldSentiment)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}

func TestOpen_Memory(t *testing.T) {
	gw, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryGateway{}, gw)
	assert.NoError(t, gw.Ping(context.Background()))
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "hazelcast"})
	assert.ErrorContains(t, err, "unknown backend")
}
