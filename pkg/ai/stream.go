package ai

import "io"

// bodyStream is a request body produced on its own goroutine. Close returns
// only after the producer has exited, so the audio it reads from can be
// rewound safely for the next attempt.
type bodyStream struct {
	*io.PipeReader
	pw   *io.PipeWriter
	done chan struct{}
}

func newBodyStream() *bodyStream {
	pr, pw := io.Pipe()
	return &bodyStream{PipeReader: pr, pw: pw, done: make(chan struct{})}
}

// Writer is where the producer writes the body
func (s *bodyStream) Writer() io.Writer { return s.pw }

// Start runs produce in the background. It must be called exactly once.
func (s *bodyStream) Start(produce func() error) {
	go func() {
		defer close(s.done)
		s.pw.CloseWithError(produce())
	}()
}

// Close stops the producer and waits for it to return
func (s *bodyStream) Close() error {
	err := s.PipeReader.Close()
	<-s.done
	return err
}
