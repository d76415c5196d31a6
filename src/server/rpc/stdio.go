package rpc

import (
	"io"
	"os"
)

// StdioConn joins stdin and stdout into the single stream jsonrpc2
// frames messages on. Nothing else may write to stdout while it is open.
type StdioConn struct {
	in  io.ReadCloser
	out io.WriteCloser
}

// NewStdioConn wraps the process's stdin and stdout
func NewStdioConn() *StdioConn {
	return &StdioConn{in: os.Stdin, out: os.Stdout}
}

func (c *StdioConn) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

func (c *StdioConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Close closes both halves, reporting the first failure
func (c *StdioConn) Close() error {
	inErr := c.in.Close()
	if err := c.out.Close(); err != nil {
		return err
	}
	return inErr
}
