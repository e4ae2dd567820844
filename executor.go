package retry

import (
	"fmt"
	"runtime/debug"
	"time"
)

type executor struct {
	logger     logger
	monitor    monitor
	stackTrace bool
}

func (this executor) Execute(action Action, retries int, interval time.Duration, onFailure, onExhausted Callback) {
	if action == nil {
		panic(ErrNilAction)
	}

	for attempt := 0; attempt < retries; attempt++ {
		err := this.attempt(action)
		if err == nil {
			this.logRecovery(attempt)
			return
		}

		this.monitor.AttemptFailed(attempt+1, err)
		this.logFailure(attempt+1, err)
		if onFailure != nil {
			onFailure(Outcome{Attempt: attempt + 1, Interval: interval, Failure: err})
		}

		time.Sleep(interval)
	}

	this.monitor.RetriesExhausted(retries)
	this.logger.Printf("[WARN] Operation still failing after [%d] attempt(s).", retries)
	if onExhausted != nil {
		onExhausted(Outcome{Attempt: retries, Interval: interval})
	}
}
func (this executor) attempt(action Action) (err error) {
	defer func() { err = captured(err, recover()) }()
	return action()
}

func (this executor) logRecovery(failedAttempts int) {
	if failedAttempts > 0 {
		this.logger.Printf("[INFO] Operation completed successfully after [%d] failed attempt(s).", failedAttempts)
	}
}
func (this executor) logFailure(attempt int, err error) {
	if this.stackTrace {
		this.logger.Printf("[WARN] Attempt [%d] operation failure [%s].\n%s", attempt, err, string(debug.Stack()))
	} else {
		this.logger.Printf("[WARN] Attempt [%d] operation failure [%s].", attempt, err)
	}
}

func captured(err error, recovered any) error {
	if recovered == nil {
		return err
	}
	if actual, ok := recovered.(error); ok {
		return actual
	}
	return fmt.Errorf("recovered panic: %v", recovered)
}
