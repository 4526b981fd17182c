package execshell

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

const (
	lineSeparatorConstant     = "\n"
	carriageReturnConstant    = "\r"
	lineSeparatorByteConstant = '\n'
)

type streamMode int

const (
	streamModeVerbatim streamMode = iota
	streamModeLines
)

// streamCollector drains a single stream into a private buffer until end-of-stream.
// The buffer is written only by Drain and must be read only after Drain returns.
type streamCollector struct {
	source io.Reader
	mode   streamMode
	buffer bytes.Buffer
}

func newStreamCollector(source io.Reader, mode streamMode) *streamCollector {
	return &streamCollector{source: source, mode: mode}
}

// Drain reads the stream to completion.
func (collector *streamCollector) Drain() error {
	if collector.mode == streamModeVerbatim {
		_, copyError := io.Copy(&collector.buffer, collector.source)
		return copyError
	}

	reader := bufio.NewReader(collector.source)
	for {
		line, readError := reader.ReadString(lineSeparatorByteConstant)
		if len(line) > 0 {
			line = strings.TrimSuffix(line, lineSeparatorConstant)
			line = strings.TrimSuffix(line, carriageReturnConstant)
			collector.buffer.WriteString(line)
			collector.buffer.WriteString(lineSeparatorConstant)
		}
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				return nil
			}
			return readError
		}
	}
}

func (collector *streamCollector) String() string {
	return collector.buffer.String()
}
