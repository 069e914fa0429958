package tests

import (
	"testing"
)

func TestMentorChatRecordsExchange(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("uma")
	if err != nil {
		t.Fatal(err)
	}

	reply, err := user.chat("how do I find my first customers?")
	if err != nil {
		t.Fatal(err)
	}
	if reply.IsUser || reply.Message == "" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	messages, err := user.mentorMessages()
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected a user/mentor pair, got %d messages", len(messages))
	}
	if !messages[0].IsUser || messages[0].Message != "how do I find my first customers?" {
		t.Fatalf("first message should be the user's: %+v", messages[0])
	}
	if messages[1].IsUser {
		t.Fatal("second message should be the mentor's reply")
	}
}

func TestMentorMessagesOldestFirst(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("vera")
	if err != nil {
		t.Fatal(err)
	}

	questions := []string{"first question", "second question", "third question"}
	for _, q := range questions {
		if _, err := user.chat(q); err != nil {
			t.Fatal(err)
		}
	}

	messages, err := user.mentorMessages()
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(messages))
	}

	for i, q := range questions {
		if messages[2*i].Message != q {
			t.Fatalf("messages out of order: expected %q at position %d, got %q", q, 2*i, messages[2*i].Message)
		}
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Fatal("messages should be ordered oldest first")
		}
	}
}

func TestMentorChatValidation(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.newUser("walt")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := user.chat(""); err == nil {
		t.Fatal("empty message should be rejected")
	}
}
