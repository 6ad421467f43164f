// Package ui provides terminal user interface components for calchat.
// This file defines message types for async backend calls using the Bubble
// Tea command pattern. Every network call returns one of these messages so
// the event loop never blocks on the server.
package ui

import (
	"calchat/internal/calendar"
	"calchat/internal/chat"
)

// =============================================================================
// Calendar Messages
// =============================================================================

// monthLoadedMsg is sent when a month fetch completes. seq identifies the
// request so results that arrive after a newer fetch can be dropped.
type monthLoadedMsg struct {
	seq   uint64
	month calendar.Month
	tasks map[string]string
	err   error
}

// =============================================================================
// Task Messages
// =============================================================================

// taskSavedMsg is sent when a create or update request completes.
type taskSavedMsg struct {
	req saveRequest
	err error
}

// =============================================================================
// Chat Messages
// =============================================================================

// chatRepliedMsg is sent when the chat endpoint answers (or fails to).
type chatRepliedMsg struct {
	reply chat.Message
	err   error
}
