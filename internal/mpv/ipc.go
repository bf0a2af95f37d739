package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

const (
	errSuccess             = "success"
	errPropertyUnavailable = "property unavailable"
)

// ErrPropertyUnavailable is returned while mpv has no value for a property
var ErrPropertyUnavailable = errors.New("mpv: property unavailable")

type command struct {
	Command   []interface{} `json:"command"`
	RequestID int           `json:"request_id,omitempty"`
}

type response struct {
	Data      interface{} `json:"data"`
	RequestID int         `json:"request_id"`
	Error     string      `json:"error"`
}

// encode returns the newline terminated wire form of cmd
func encode(cmd command) ([]byte, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	return append(data, '\n'), nil
}

// readResponse reads lines until it finds a reply. mpv interleaves event
// lines with replies on the same connection.
func readResponse(reader *bufio.Reader) (*response, error) {
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(line, &envelope); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		if _, isEvent := envelope["event"]; isEvent {
			continue
		}

		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return &resp, nil
	}
}

// send delivers one command over a fresh connection to socketPath
func send(socketPath string, timeout time.Duration, args ...interface{}) (*response, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mpv socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	data, err := encode(command{Command: args})
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write command: %w", err)
	}

	resp, err := readResponse(bufio.NewReader(conn))
	if err != nil {
		return nil, err
	}

	switch resp.Error {
	case "", errSuccess:
		return resp, nil
	case errPropertyUnavailable:
		return resp, ErrPropertyUnavailable
	default:
		return resp, fmt.Errorf("mpv error: %s", resp.Error)
	}
}
