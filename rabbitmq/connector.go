package rabbitmq

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/smarty/retry"
	"github.com/streadway/amqp"
)

type defaultConnector struct {
	executor retry.Executor
	broker   url.URL
	config   configuration
	logger   logger

	active []*amqp.Connection
	mutex  sync.Mutex
}

func newConnector(config configuration) Connector {
	return &defaultConnector{
		executor: retry.New(retry.Options.Logger(config.Logger), retry.Options.Monitor(config.Monitor)),
		broker:   config.Address,
		config:   config,
		logger:   config.Logger,
	}
}

func (this *defaultConnector) Connect(ctx context.Context) (*amqp.Connection, error) {
	amqpConfig := this.configuration(ctx)

	var encryption = "plaintext"
	if this.broker.Scheme == "amqps" {
		encryption = "encrypted"
	}

	this.logger.Printf("[INFO] Establishing [%s] AMQP connection to [%s://%s] using virtual host [%s]...", encryption, this.broker.Scheme, this.broker.Host, amqpConfig.Vhost)

	var connection *amqp.Connection
	var lastFailure error

	this.executor.Execute(func() error {
		attempted, err := amqp.DialConfig(this.broker.String(), amqpConfig)
		if err != nil {
			return err
		}
		connection = attempted
		return nil
	}, this.config.MaxRetries, this.config.Interval,
		func(outcome retry.Outcome) {
			lastFailure = outcome.Failure
			this.logger.Printf("[WARN] Unable to connect on attempt [%d] [%s].", outcome.Attempt, outcome.Failure)
		},
		func(outcome retry.Outcome) {
			this.logger.Printf("[WARN] Unable to connect after [%d] attempt(s).", outcome.Attempt)
		},
	)

	if connection == nil {
		if lastFailure == nil {
			return nil, ErrUnableToConnect
		}
		return nil, lastFailure
	}

	this.logger.Printf("[INFO] Established [%s] AMQP connection to [%s://%s] using virtual host [%s].", encryption, this.broker.Scheme, this.broker.Host, amqpConfig.Vhost)
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.active = append(this.active, connection)
	return connection, nil
}
func (this *defaultConnector) configuration(ctx context.Context) amqp.Config {
	query := this.broker.Query()
	username, password := parseAuthentication(this.broker.User, query.Get("username"), query.Get("password"))

	return amqp.Config{
		SASL:  []amqp.Authentication{&amqp.PlainAuth{Username: username, Password: password}},
		Vhost: parseVirtualHost(this.broker.Path),
		Dial: func(network, address string) (net.Conn, error) {
			var dialer net.Dialer
			return dialer.DialContext(ctx, network, address)
		},
	}
}
func parseAuthentication(info *url.Userinfo, queryUsername, queryPassword string) (string, string) {
	if info == nil {
		return coalesce(queryUsername, "guest"), coalesce(queryPassword, "guest")
	}

	username := coalesce(info.Username(), queryUsername)
	password, _ := info.Password()
	password = coalesce(password, queryPassword)

	return username, password
}
func parseVirtualHost(value string) string {
	value = strings.TrimPrefix(value, "/")
	if len(value) == 0 {
		return "/"
	}

	return value
}
func coalesce(values ...string) string {
	for _, value := range values {
		if len(value) > 0 {
			return value
		}
	}

	return ""
}

func (this *defaultConnector) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	for i := range this.active {
		_ = this.active[i].Close()
		this.active[i] = nil
	}
	this.active = this.active[0:0]

	return nil
}
