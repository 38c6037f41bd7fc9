package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/ports"
)

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// publisher lo que se usa de *nats.Conn.
type publisher interface {
	Publish(subj string, data []byte) error
}

// NATSPublisher publica los cambios de estado de operaciones en
// <prefijo>.operation.<estado>, p. ej. wms.operation.completed.
type NATSPublisher struct {
	conn   publisher
	prefix string
	log    zerolog.Logger
}

// NewNATSPublisher construye el publicador sobre una conexión abierta.
func NewNATSPublisher(conn *nats.Conn, prefix string, log zerolog.Logger) *NATSPublisher {
	return newPublisher(conn, prefix, log)
}

func newPublisher(conn publisher, prefix string, log zerolog.Logger) *NATSPublisher {
	if prefix == "" {
		prefix = "wms"
	}
	return &NATSPublisher{conn: conn, prefix: prefix, log: log}
}

// Connect abre la conexión a NATS con reconexión indefinida.
func Connect(url, name string, log zerolog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats desconectado")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconectado")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("conectar nats: %w", err)
	}
	return nc, nil
}

// Subject asunto para un estado de operación.
func (p *NATSPublisher) Subject(status string) string {
	return p.prefix + ".operation." + strings.ToLower(status)
}

// PublishOperationEvent serializa el evento en JSON y lo publica.
func (p *NATSPublisher) PublishOperationEvent(ctx context.Context, event ports.OperationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	subject := p.Subject(event.Status)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publicar %s: %w", subject, err)
	}
	p.log.Debug().Str("subject", subject).Str("operation_id", event.OperationID).Msg("evento publicado")
	return nil
}

// NopPublisher descarta los eventos (NATS_URL vacío).
type NopPublisher struct{}

func (NopPublisher) PublishOperationEvent(context.Context, ports.OperationEvent) error { return nil }
