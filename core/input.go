package core

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// LineReader supplies input to ReadIn instructions, one line per call. ok is
// false once no input remains.
type LineReader interface {
	ReadLine() (line string, ok bool)
}

type bufferedReader struct {
	reader *bufio.Reader
	done   bool
}

// NewLineReader reads lines lazily from r. Lines may be of any length.
func NewLineReader(r io.Reader) LineReader {
	return &bufferedReader{reader: bufio.NewReader(r)}
}

func (b *bufferedReader) ReadLine() (string, bool) {
	if b.done {
		return "", false
	}

	line, err := b.reader.ReadString('\n')
	if err != nil {
		b.done = true

		if !errors.Is(err, io.EOF) {
			slog.Warn("input read failed, treating as end of input", "error", err)
			return "", false
		}

		if line == "" {
			return "", false
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, true
}
