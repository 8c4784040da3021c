package mb

import "testing"

func TestValidateCommandEnvelope(t *testing.T) {
	cmd, err := NewCommand("music.search", SearchBody{Query: "test"})
	if err != nil {
		t.Fatalf("new command: %v", err)
	}
	if err := ValidateCommandEnvelope(cmd); err == nil {
		t.Fatalf("expected error for undecorated command")
	}

	cmd.ID = "id"
	cmd.TS = 1
	cmd.From = "tester"
	if err := ValidateCommandEnvelope(cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCommandEnvelopeMissingFields(t *testing.T) {
	cmd := CommandEnvelope{}
	if err := ValidateCommandEnvelope(cmd); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTopics(t *testing.T) {
	if TopicCommands(BaseTopic, "node") != "mb/v1/node/node/cmd" {
		t.Fatalf("unexpected command topic")
	}
	if TopicPresence(BaseTopic, "node") != "mb/v1/node/node/presence" {
		t.Fatalf("unexpected presence topic")
	}
	if TopicEvents(BaseTopic, "node") != "mb/v1/node/node/evt" {
		t.Fatalf("unexpected event topic")
	}
	if TopicReply(BaseTopic, "cli") != "mb/v1/reply/cli" {
		t.Fatalf("unexpected reply topic")
	}
}
