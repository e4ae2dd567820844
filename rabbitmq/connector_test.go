package rabbitmq

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/smarty/assertions/should"
	"github.com/smarty/gunit"
)

func TestConnectorFixture(t *testing.T) {
	gunit.Run(new(ConnectorFixture), t)
}

type ConnectorFixture struct {
	*gunit.Fixture

	loggedMessages     []string
	monitoredAttempts  []int
	monitoredErrors    []error
	monitoredExhausted []int
}

func (this *ConnectorFixture) TestZeroRetriesFailsWithoutDialing() {
	connector := New(
		Options.MaxRetries(0),
		Options.Logger(this),
	)

	connection, err := connector.Connect(context.Background())

	this.So(connection, should.BeNil)
	this.So(err, should.Equal, ErrUnableToConnect)
}
func (this *ConnectorFixture) TestUndialableBrokerExhaustsConfiguredRetries() {
	connector := New(
		Options.Address("badscheme://localhost:5672/"),
		Options.MaxRetries(2),
		Options.Interval(time.Millisecond),
		Options.Logger(this),
		Options.Monitor(this),
	)

	connection, err := connector.Connect(context.Background())

	this.So(connection, should.BeNil)
	this.So(err, should.NotBeNil)
	this.So(this.loggedMessages, should.Contain, fmt.Sprintf("[WARN] Unable to connect on attempt [1] [%s].", err))
	this.So(this.loggedMessages, should.Contain, "[WARN] Unable to connect after [2] attempt(s).")
	this.So(this.monitoredAttempts, should.Resemble, []int{1, 2})
	this.So(this.monitoredErrors, should.Resemble, []error{err, err})
	this.So(this.monitoredExhausted, should.Resemble, []int{2})
}
func (this *ConnectorFixture) TestCloseWithoutConnections() {
	this.So(New().Close(), should.BeNil)
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

func (this *ConnectorFixture) Printf(format string, args ...any) {
	this.loggedMessages = append(this.loggedMessages, fmt.Sprintf(format, args...))
}

func (this *ConnectorFixture) AttemptFailed(attempt int, resultError error) {
	this.monitoredAttempts = append(this.monitoredAttempts, attempt)
	this.monitoredErrors = append(this.monitoredErrors, resultError)
}
func (this *ConnectorFixture) RetriesExhausted(attempts int) {
	this.monitoredExhausted = append(this.monitoredExhausted, attempts)
}
