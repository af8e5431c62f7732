package promise

// SetDefaultPolicy changes the Policy every Map/MapReports/Sink/ForEach
// call uses when none is given explicitly via WithPolicy. It affects
// calls made after it returns; it is not itself safe to call
// concurrently with those calls racing on the same goroutine that
// reads it, the same caveat any other package-level ambient default
// carries.
func SetDefaultPolicy(p Policy) {
	defaultPolicy = p
}

// SetDefaultLogger changes the Logger every Map/MapReports/Sink/ForEach
// call uses when none is given explicitly via WithLogger.
func SetDefaultLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	defaultLogger = l
}
