package alert

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiDeliversToAllSinks(t *testing.T) {
	var got []string
	record := func(name string) Alerter {
		return Func(func(_ context.Context, a Alert) error {
			got = append(got, name+":"+a.ID)
			return nil
		})
	}
	boom := errors.New("boom")
	failing := Func(func(context.Context, Alert) error { return boom })

	m := Multi{record("a"), failing, nil, record("b")}
	err := m.Show(context.Background(), Alert{ID: "42"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a:42", "b:42"}, got)
}

func TestChannelDropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	ctx := context.Background()

	require.NoError(t, c.Show(ctx, Alert{ID: "1"}))
	require.NoError(t, c.Show(ctx, Alert{ID: "2"}))

	msg := c.Wait()()
	shown, ok := msg.(ShownMsg)
	require.True(t, ok)
	assert.Equal(t, "1", shown.Alert.ID)
	assert.Empty(t, c.ch)
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisherShow(t *testing.T) {
	fc := &fakeChannel{}
	p := &Publisher{channel: fc, exchange: "alerts"}

	a := Alert{ID: "n1", Title: "New Governance Proposal", Message: "Vote", Priority: PriorityHigh}
	require.NoError(t, p.Show(context.Background(), a))

	assert.Equal(t, "alerts", fc.exchange)
	assert.Equal(t, RoutingKey, fc.key)
	assert.Equal(t, "application/json", fc.msg.ContentType)
	assert.Equal(t, "n1", fc.msg.MessageId)

	var decoded Alert
	require.NoError(t, json.Unmarshal(fc.msg.Body, &decoded))
	assert.Equal(t, a, decoded)

	require.NoError(t, p.Close())
	assert.True(t, fc.closed)
}
