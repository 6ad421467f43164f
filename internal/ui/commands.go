// Package ui provides terminal user interface components for calchat.
// This file contains tea.Cmd factories that wrap backend calls. Each command
// returns a corresponding message type defined in messages.go.
package ui

import (
	"context"
	"log/slog"

	"calchat/internal/calendar"
	"calchat/internal/chat"
	"calchat/internal/notify"

	tea "github.com/charmbracelet/bubbletea"
)

// Backend is the subset of the task/chat API the UI talks to.
// *api.Client satisfies it.
type Backend interface {
	FetchMonth(ctx context.Context, m calendar.Month) (map[string]string, error)
	CreateTask(ctx context.Context, date, text string) error
	UpdateTask(ctx context.Context, date, text string) error
	Chat(ctx context.Context, message string) (chat.Message, error)
}

// saveRequest describes one popup save. create selects POST over PUT.
type saveRequest struct {
	date   string
	text   string
	create bool
}

// method names the HTTP verb the request maps to, for logging.
func (r saveRequest) method() string {
	if r.create {
		return "POST"
	}
	return "PUT"
}

// fetchMonthCmd returns a command that loads every task in the month.
func fetchMonthCmd(b Backend, seq uint64, m calendar.Month) tea.Cmd {
	return func() tea.Msg {
		tasks, err := b.FetchMonth(context.Background(), m)
		return monthLoadedMsg{seq: seq, month: m, tasks: tasks, err: err}
	}
}

// saveTaskCmd returns a command that creates or replaces a day's task.
func saveTaskCmd(b Backend, req saveRequest) tea.Cmd {
	return func() tea.Msg {
		var err error
		if req.create {
			err = b.CreateTask(context.Background(), req.date, req.text)
		} else {
			err = b.UpdateTask(context.Background(), req.date, req.text)
		}
		return taskSavedMsg{req: req, err: err}
	}
}

// sendChatCmd returns a command that posts a chat message.
func sendChatCmd(b Backend, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := b.Chat(context.Background(), text)
		return chatRepliedMsg{reply: reply, err: err}
	}
}

// notifyCmd returns a command that shows a desktop notification. Failures
// are only logged.
func notifyCmd(n notify.Notifier, title, body string) tea.Cmd {
	return func() tea.Msg {
		if err := n.Send(title, notify.Summary(body)); err != nil {
			slog.Warn("desktop notification failed", "error", err)
		}
		return nil
	}
}
