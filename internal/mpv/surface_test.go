package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/eizo/internal/model"
	"github.com/ytget/eizo/internal/playback"
)

// fakeMPV answers IPC requests on a unix socket the way mpv does
type fakeMPV struct {
	t        *testing.T
	listener net.Listener
	path     string

	mu       sync.Mutex
	commands [][]interface{}
	reply    func(cmd []interface{}) string
}

func newFakeMPV(t *testing.T, reply func(cmd []interface{}) string) *fakeMPV {
	t.Helper()
	dir, err := os.MkdirTemp("", "mpv")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "ipc.sock")
	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	f := &fakeMPV{t: t, listener: l, path: path, reply: reply}
	go f.serve()
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return
	}
	var cmd command
	if err := json.Unmarshal(line, &cmd); err != nil {
		return
	}
	f.mu.Lock()
	f.commands = append(f.commands, cmd.Command)
	f.mu.Unlock()

	// an unsolicited event precedes the reply
	_, _ = conn.Write([]byte(`{"event":"playback-restart"}` + "\n"))
	_, _ = conn.Write([]byte(f.reply(cmd.Command) + "\n"))
}

func (f *fakeMPV) Commands() [][]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]interface{}(nil), f.commands...)
}

func testSurface(f *fakeMPV) *Surface {
	opts := Options{CommandTimeout: time.Second, LoadTimeout: time.Second}.withDefaults()
	return newSurface(f.path, opts, slog.Default())
}

func TestSurface_LoadWaitsForPosition(t *testing.T) {
	var mu sync.Mutex
	polls := 0
	f := newFakeMPV(t, func(cmd []interface{}) string {
		if cmd[0] == "get_property" {
			mu.Lock()
			defer mu.Unlock()
			polls++
			if polls < 3 {
				return `{"request_id":0,"error":"property unavailable"}`
			}
			return `{"data":5.25,"request_id":0,"error":"success"}`
		}
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)

	_, err := s.CurrentTime()
	require.ErrorIs(t, err, playback.ErrNotLoaded)

	require.NoError(t, s.Load(context.Background(), "aqz-KE-bpKQ", 5))

	cmds := f.Commands()
	require.GreaterOrEqual(t, len(cmds), 3)
	assert.Equal(t, []interface{}{"set_property", "start", "5.000"}, cmds[0])
	assert.Equal(t, []interface{}{"loadfile", "https://www.youtube.com/watch?v=aqz-KE-bpKQ", "replace"}, cmds[1])

	got, err := s.CurrentTime()
	require.NoError(t, err)
	assert.Equal(t, 5.25, got)
}

func TestSurface_LoadResolvesWatchPage(t *testing.T) {
	f := newFakeMPV(t, func(cmd []interface{}) string {
		if cmd[0] == "get_property" {
			return `{"data":5,"request_id":0,"error":"success"}`
		}
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)

	var pages []string
	s.opts.Resolver = ResolverFunc(func(_ context.Context, page string) (string, error) {
		pages = append(pages, page)
		return "https://rr1.example.net/videoplayback?id=1", nil
	})

	require.NoError(t, s.Load(context.Background(), "aqz-KE-bpKQ", 5))

	assert.Equal(t, []string{"https://www.youtube.com/watch?v=aqz-KE-bpKQ"}, pages)
	cmds := f.Commands()
	require.GreaterOrEqual(t, len(cmds), 2)
	assert.Equal(t, []interface{}{"loadfile", "https://rr1.example.net/videoplayback?id=1", "replace"}, cmds[1])
}

func TestSurface_LoadFailsFastOnResolveError(t *testing.T) {
	f := newFakeMPV(t, func([]interface{}) string {
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)
	s.opts.LoadTimeout = time.Minute

	errUnavailable := errors.New("video unavailable")
	s.opts.Resolver = ResolverFunc(func(context.Context, string) (string, error) {
		return "", errUnavailable
	})

	started := time.Now()
	err := s.Load(context.Background(), "gone", 0)
	require.ErrorIs(t, err, errUnavailable)
	assert.Less(t, time.Since(started), time.Second)
	assert.Empty(t, f.Commands())
}

func TestSurface_LoadSkipsResolverForFilesAndStreams(t *testing.T) {
	f := newFakeMPV(t, func(cmd []interface{}) string {
		if cmd[0] == "get_property" {
			return `{"data":0,"request_id":0,"error":"success"}`
		}
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)
	s.opts.Resolver = ResolverFunc(func(context.Context, string) (string, error) {
		t.Error("resolver should not be called")
		return "", nil
	})

	require.NoError(t, s.Load(context.Background(), "/media/clip.mp4", 0))
	require.NoError(t, s.Load(context.Background(), "https://cdn.example.com/v.webm", 0))
}

func TestIsWatchPage(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://m.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"http://youtube.com/shorts/abc", true},
		{"https://cdn.example.com/v.webm", false},
		{"/media/clip.mp4", false},
		{"file:///media/clip.mp4", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isWatchPage(tt.target), tt.target)
	}
}

func TestSurface_LoadTimesOut(t *testing.T) {
	f := newFakeMPV(t, func(cmd []interface{}) string {
		if cmd[0] == "get_property" {
			return `{"request_id":0,"error":"property unavailable"}`
		}
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)
	s.opts.LoadTimeout = 200 * time.Millisecond

	err := s.Load(context.Background(), "broken", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSurface_LoadReportsMpvError(t *testing.T) {
	f := newFakeMPV(t, func(cmd []interface{}) string {
		if cmd[0] == "loadfile" {
			return `{"request_id":0,"error":"invalid parameter"}`
		}
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)

	err := s.Load(context.Background(), "x", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameter")
}

func TestSurface_Commands(t *testing.T) {
	f := newFakeMPV(t, func([]interface{}) string {
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)

	require.NoError(t, s.Seek(12.5))
	require.NoError(t, s.SetStyle(model.AspectFullBleed.String()))
	require.NoError(t, s.SetStyle(model.AspectOriginal.String()))
	require.NoError(t, s.SetPaused(true))

	assert.Equal(t, [][]interface{}{
		{"seek", 12.5, "absolute"},
		{"set_property", "panscan", 1.0},
		{"set_property", "panscan", 0.0},
		{"set_property", "pause", true},
	}, f.Commands())
}

func TestSurface_CloseSendsQuit(t *testing.T) {
	f := newFakeMPV(t, func([]interface{}) string {
		return `{"request_id":0,"error":"success"}`
	})
	s := testSurface(f)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	cmds := f.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, []interface{}{"quit"}, cmds[0])
	assert.ErrorIs(t, s.Seek(1), playback.ErrSurfaceClosed)
}

func TestSurface_URL(t *testing.T) {
	s := newSurface("/tmp/x.sock", Options{}.withDefaults(), slog.Default())

	assert.Equal(t, "https://www.youtube.com/watch?v=abc", s.URL("abc"))
	assert.Equal(t, "/media/clip.mp4", s.URL("/media/clip.mp4"))
	assert.Equal(t, "https://example.com/v.webm", s.URL("https://example.com/v.webm"))
}

func TestPanscan(t *testing.T) {
	assert.Equal(t, 1.0, panscan(model.AspectFullBleed))
	assert.Equal(t, 0.5, panscan(model.AspectSquare))
	assert.Equal(t, 0.0, panscan(model.AspectOriginal))
}

func TestSocketPath(t *testing.T) {
	p := socketPath("/tmp", "01928f3e-7b7a-7cc2-9a3e-5f0c2b9d1e4a")
	assert.True(t, strings.HasPrefix(filepath.Base(p), "eizo-mpv-"))
	assert.True(t, strings.HasSuffix(p, "5f0c2b9d1e4a.sock"))
}

func TestReadResponse_SkipsEvents(t *testing.T) {
	input := `{"event":"file-loaded"}` + "\n" + `{"data":3.5,"request_id":0,"error":"success"}` + "\n"
	resp, err := readResponse(bufio.NewReader(strings.NewReader(input)))
	require.NoError(t, err)
	assert.Equal(t, 3.5, resp.Data)
}

func TestEncode(t *testing.T) {
	data, err := encode(command{Command: []interface{}{"seek", 5.0, "absolute"}})
	require.NoError(t, err)
	assert.Equal(t, `{"command":["seek",5,"absolute"]}`+"\n", string(data))
}
