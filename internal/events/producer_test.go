package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_RejectsUnencodableEvent(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	defer p.Close()

	err := p.PublishEvent(context.Background(), TopicProducts, "1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Marshal")
}

func TestRecorder_FiltersByTopic(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	require.NoError(t, r.PublishEvent(ctx, TopicProducts, "1", map[string]any{"type": "product_created", "productID": 1}))
	require.NoError(t, r.PublishEvent(ctx, TopicOrders, "u", map[string]any{"type": "order_placed"}))

	got := r.Events(TopicProducts)
	require.Len(t, got, 1)
	assert.Equal(t, "product_created", got[0].Event["type"])
	assert.EqualValues(t, 1, got[0].Event["productID"])
	assert.Len(t, r.Events(""), 2)

	assert.NoError(t, Nop{}.PublishEvent(ctx, TopicCart, "k", nil))
}
