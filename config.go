package retry

func New(options ...option) Executor {
	this := executor{}

	for _, item := range Options.defaults(options...) {
		item(&this)
	}

	return this
}

var Options singleton

type singleton struct{}
type option func(*executor)

func (singleton) Logger(value logger) option {
	return func(this *executor) { this.logger = value }
}
func (singleton) Monitor(value monitor) option {
	return func(this *executor) { this.monitor = value }
}
func (singleton) LogStackTrace(value bool) option {
	return func(this *executor) { this.stackTrace = value }
}

func (singleton) defaults(options ...option) []option {
	const defaultLogStackTrace = false
	var defaultLogger = nop{}
	var defaultMonitor = nop{}

	return append([]option{
		Options.Logger(defaultLogger),
		Options.Monitor(defaultMonitor),
		Options.LogStackTrace(defaultLogStackTrace),
	}, options...)
}

type nop struct{}

func (nop) Printf(_ string, _ ...any) {}

func (nop) AttemptFailed(_ int, _ error) {}
func (nop) RetriesExhausted(_ int)       {}
