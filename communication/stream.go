package communication

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type streamCommunicator struct {
	reader *bufio.Reader
	writer io.Writer
	closer func() error
}

// NewStreamCommunicator speaks the protocol over a reader and a writer, one
// message per line. Closing calls closer if it is not nil.
func NewStreamCommunicator(r io.Reader, w io.Writer, closer func() error) Communicator {
	return &streamCommunicator{
		reader: bufio.NewReader(r),
		writer: w,
		closer: closer,
	}
}

func (c *streamCommunicator) Send(line string) error {
	if _, err := fmt.Fprintf(c.writer, "%s\n", line); err != nil {
		return fmt.Errorf("failed to send %q: %w", line, err)
	}
	return nil
}

func (c *streamCommunicator) Receive() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to receive: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (c *streamCommunicator) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// NewPipe returns two communicators connected to each other in memory.
func NewPipe() (Communicator, Communicator) {
	leftReader, rightWriter := io.Pipe()
	rightReader, leftWriter := io.Pipe()

	left := NewStreamCommunicator(leftReader, leftWriter, func() error {
		leftWriter.Close()
		return leftReader.Close()
	})
	right := NewStreamCommunicator(rightReader, rightWriter, func() error {
		rightWriter.Close()
		return rightReader.Close()
	})
	return left, right
}
