package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/ports"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subj)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestNATSPublisher_SubjectAndPayload(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(conn, "", zerolog.Nop())

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	err := p.PublishOperationEvent(context.Background(), ports.OperationEvent{
		OperationID: "op-1", Type: "RECEIVING", Status: "IN_PROGRESS", OccurredAt: at,
	})
	require.NoError(t, err)

	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "wms.operation.in_progress", conn.subjects[0])

	var got ports.OperationEvent
	require.NoError(t, json.Unmarshal(conn.payloads[0], &got))
	assert.Equal(t, "op-1", got.OperationID)
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestNATSPublisher_PropagatesError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := newPublisher(conn, "plant1", zerolog.Nop())

	err := p.PublishOperationEvent(context.Background(), ports.OperationEvent{OperationID: "op-1", Status: "COMPLETED"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plant1.operation.completed")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishOperationEvent(context.Background(), ports.OperationEvent{}))
}
