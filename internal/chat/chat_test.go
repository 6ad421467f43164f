package chat

import "testing"

func TestTranscript_AppendOrder(t *testing.T) {
	var tr Transcript

	if _, ok := tr.Last(); ok {
		t.Error("Last() on empty transcript should report false")
	}

	tr.Append(User("hi"))
	tr.Append(Assistant("hello"))

	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}
	msgs := tr.Messages()
	if msgs[0].Role != RoleUser || msgs[0].Text != "hi" {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	if last, _ := tr.Last(); last.Text != "hello" {
		t.Errorf("Last() = %+v", last)
	}
}

func TestTranscript_MessagesIsCopy(t *testing.T) {
	var tr Transcript
	tr.Append(User("original"))

	msgs := tr.Messages()
	msgs[0].Text = "mutated"

	if got := tr.Messages()[0].Text; got != "original" {
		t.Errorf("transcript was mutated through Messages(): %q", got)
	}
}

func TestRole_IsUser(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleUser, true},
		{RoleAssistant, false},
		{Role("system"), false},
		{Role(""), false},
	}
	for _, tt := range tests {
		if got := tt.role.IsUser(); got != tt.want {
			t.Errorf("Role(%q).IsUser() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
