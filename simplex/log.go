package simplex

// Logger receives one line per pivot. The default is a no-op; inject an
// implementation (e.g. log.Default()) with WithLogger to trace iterations.
type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}
