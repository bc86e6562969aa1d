package llm

import "testing"

func TestFlattenMessages(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "Context: doc text"},
		{Role: RoleUser, Content: "what is this?"},
		{Role: RoleAssistant, Content: "a document"},
		{Role: RoleUser, Content: "thanks"},
	}

	want := "System: Context: doc text\n" +
		"User: what is this?\n" +
		"Assistant: a document\n" +
		"User: thanks"

	if got := FlattenMessages(messages); got != want {
		t.Errorf("FlattenMessages() = %q, want %q", got, want)
	}
}

func TestFlattenMessagesDeterministic(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	}

	first := FlattenMessages(messages)
	for i := 0; i < 5; i++ {
		if got := FlattenMessages(messages); got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}

func TestFlattenMessagesEmpty(t *testing.T) {
	if got := FlattenMessages(nil); got != "" {
		t.Errorf("FlattenMessages(nil) = %q, want empty string", got)
	}
}

func TestApplyOptions(t *testing.T) {
	defaults := Options{Temperature: 0.7, Model: "base"}

	got := ApplyOptions(defaults, []Option{WithTemperature(0.1), WithModel("override")})

	if got.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", got.Temperature)
	}
	if got.Model != "override" {
		t.Errorf("Model = %q, want %q", got.Model, "override")
	}

	untouched := ApplyOptions(defaults, nil)
	if untouched != defaults {
		t.Errorf("ApplyOptions with no opts = %+v, want defaults %+v", untouched, defaults)
	}
}
