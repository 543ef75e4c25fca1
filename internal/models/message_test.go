package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSender(t *testing.T) {
	tests := []struct {
		sender Sender
		valid  bool
		label  string
	}{
		{SenderUser, true, "You"},
		{SenderAssistant, true, "Assistant"},
		{Sender("system"), false, "Unknown"},
		{Sender(""), false, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sender), func(t *testing.T) {
			if got := tt.sender.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.sender.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.sender.String(); got != string(tt.sender) {
				t.Errorf("String() = %q", got)
			}
		})
	}
}

func TestMessageSender(t *testing.T) {
	user := Message{ID: 1, Text: "Hello", Sender: SenderUser}
	if !user.IsUser() || user.IsAssistant() {
		t.Error("user message misclassified")
	}

	reply := Message{ID: 2, Text: "Hi!", Sender: SenderAssistant}
	if !reply.IsAssistant() || reply.IsUser() {
		t.Error("assistant message misclassified")
	}
}

func TestMessageJSON(t *testing.T) {
	msg := Message{
		ID:        1718000000000,
		Text:      "Hello",
		Sender:    SenderUser,
		CreatedAt: time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	for _, field := range []string{`"id":1718000000000`, `"sender":"user"`, `"created_at":"2024-06-10T14:30:00Z"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON %s missing %s", data, field)
		}
	}
}
