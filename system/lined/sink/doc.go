// Package sink provides the shared output stream lined writes received
// lines and session markers to.
//
// A [Sink] serializes its writes so that lines from concurrent sessions are
// never interleaved mid-line.
package sink
