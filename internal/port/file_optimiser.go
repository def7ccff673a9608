package port

// FileOptimiser runs the post-encode optimisation pass over derivative bytes.
// Failures are logged and swallowed by callers; the unoptimised bytes stay valid.
type FileOptimiser interface {
	Optimise(format string, data []byte, quality int) ([]byte, error)
}
