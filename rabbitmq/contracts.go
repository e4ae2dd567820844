package rabbitmq

import (
	"context"
	"errors"
	"io"

	"github.com/streadway/amqp"
)

type Connector interface {
	Connect(ctx context.Context) (*amqp.Connection, error)
	io.Closer
}

type logger interface {
	Printf(format string, args ...any)
}
type monitor interface {
	AttemptFailed(attempt int, resultError error)
	RetriesExhausted(attempts int)
}

var ErrUnableToConnect = errors.New("unable to establish AMQP connection")
