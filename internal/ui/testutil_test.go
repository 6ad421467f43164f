package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"calchat/internal/calendar"
	"calchat/internal/chat"
	"calchat/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	may2024  = calendar.Month{Year: 2024, Month: time.May}
	june2024 = calendar.Month{Year: 2024, Month: time.June}
)

// setupTest disables colors so rendered output is plain text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// fixedNow pins "today" to 2024-05-15.
func fixedNow() time.Time {
	return time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// backendCall records one request made against fakeBackend.
type backendCall struct {
	method string
	date   string
	text   string
	month  calendar.Month
}

// fakeBackend is an in-memory Backend. Months map to the tasks returned by
// FetchMonth; the error fields force failures.
type fakeBackend struct {
	mu       sync.Mutex
	months   map[calendar.Month]map[string]string
	reply    chat.Message
	fetchErr error
	saveErr  error
	chatErr  error
	calls    []backendCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{months: map[calendar.Month]map[string]string{}}
}

func (f *fakeBackend) record(c backendCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeBackend) FetchMonth(_ context.Context, m calendar.Month) (map[string]string, error) {
	f.record(backendCall{method: "GET", month: m})
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := map[string]string{}
	for k, v := range f.months[m] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeBackend) CreateTask(_ context.Context, date, text string) error {
	f.record(backendCall{method: "POST", date: date, text: text})
	return f.saveErr
}

func (f *fakeBackend) UpdateTask(_ context.Context, date, text string) error {
	f.record(backendCall{method: "PUT", date: date, text: text})
	return f.saveErr
}

func (f *fakeBackend) Chat(_ context.Context, message string) (chat.Message, error) {
	f.record(backendCall{method: "CHAT", text: message})
	if f.chatErr != nil {
		return chat.Message{}, f.chatErr
	}
	return f.reply, nil
}

// callsOf returns the recorded calls with the given method.
func (f *fakeBackend) callsOf(method string) []backendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []backendCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

// newTestApp builds a wide-layout app against fb with the clock on
// 2024-05-15.
func newTestApp(t *testing.T, fb *fakeBackend) *App {
	t.Helper()
	setupTest(t)
	app := NewApp(fb, createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 100,
		WeekStart:             time.Sunday,
		Mouse:                 true,
		Now:                   fixedNow,
	})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

// drain runs cmd and returns the messages it produced, expanding batches.
// Only use it on commands that do not include cursor blinks.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(t, c)...)
	}
	return out
}

// one runs cmd and expects exactly one message of type T.
func one[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	msgs := drain(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1: %#v", len(msgs), msgs)
	}
	m, ok := msgs[0].(T)
	if !ok {
		t.Fatalf("got %T, want %T", msgs[0], m)
	}
	return m
}

// loadMonth fetches the calendar's month and applies the result.
func loadMonth(t *testing.T, app *App) {
	t.Helper()
	app.Update(one[monthLoadedMsg](t, app.requestMonth()))
}

// press sends a key by name ("enter", "ctrl+s", "n") and returns the
// resulting command.
func press(app *App, k string) tea.Cmd {
	_, cmd := app.Update(keyMsg(k))
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"enter":  tea.KeyEnter,
		"esc":    tea.KeyEsc,
		"tab":    tea.KeyTab,
		"ctrl+c": tea.KeyCtrlC,
		"ctrl+s": tea.KeyCtrlS,
		"pgup":   tea.KeyPgUp,
		"pgdown": tea.KeyPgDown,
		"up":     tea.KeyUp,
		"down":   tea.KeyDown,
		"left":   tea.KeyLeft,
		"right":  tea.KeyRight,
	}
	if kt, ok := special[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
