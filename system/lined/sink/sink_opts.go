package sink

// DefaultMarker is the separator written at the start and end of a session.
const DefaultMarker = "============="

// markerEOL terminates the session marker line.
const markerEOL = "\r\n"

type sinkOpts struct {
	marker string
	color  bool
}

// Option configures a Sink.
type Option func(*sinkOpts)

// WithMarker sets the session separator. An empty marker keeps the default.
func WithMarker(m string) Option {
	return func(o *sinkOpts) {
		if m != "" {
			o.marker = m
		}
	}
}

// WithColor colors the client prefix of each line.
func WithColor(v bool) Option {
	return func(o *sinkOpts) { o.color = v }
}
