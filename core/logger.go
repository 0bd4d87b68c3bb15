package core

// Logger is any service that can log messages and report errors upstream.
// Extra args are implementation-defined; an error or the acting user may be passed
// along for reporting context.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
