package parse

import "testing"

func TestExtractAction(t *testing.T) {
	// Arrange
	text := "Sure, I set that up for you.\n\n" +
		"```schedule-action\n" +
		`{"action":"create_reminder","title":"Dentist appointment","time":"TOMORROW_9AM","lead_times":[10,60],"channels":["email"]}` +
		"\n```\n\nAnything else?"

	// Act
	action, cleaned := ExtractAction(text)

	// Assert
	if action == nil {
		t.Fatal("expected an action, got nil")
	}
	if action.Title != "Dentist appointment" {
		t.Fatalf("unexpected title: %q", action.Title)
	}
	if action.TimeToken != "TOMORROW_9AM" {
		t.Fatalf("unexpected time token: %q", action.TimeToken)
	}
	if len(action.LeadTimes) != 2 || action.LeadTimes[0] != 10 || action.LeadTimes[1] != 60 {
		t.Fatalf("unexpected lead times: %v", action.LeadTimes)
	}
	if cleaned != "Sure, I set that up for you.\n\nAnything else?" {
		t.Fatalf("unexpected cleaned text: %q", cleaned)
	}
}

func TestExtractActionFullPayload(t *testing.T) {
	// Arrange
	text := "```schedule-action\n" +
		`{"action":"create_reminder","title":"Water plants","time":"NEXT_SATURDAY_8AM",` +
		`"recurrence":"weekly","priority":"high","tags":["home","garden"],"location":"balcony"}` +
		"\n```"

	// Act
	action, _ := ExtractAction(text)

	// Assert
	if action == nil {
		t.Fatal("expected an action, got nil")
	}
	if action.Recurrence != "weekly" {
		t.Fatalf("unexpected recurrence: %q", action.Recurrence)
	}
	if action.Priority != "high" {
		t.Fatalf("unexpected priority: %q", action.Priority)
	}
	if len(action.Tags) != 2 || action.Tags[0] != "home" || action.Tags[1] != "garden" {
		t.Fatalf("unexpected tags: %v", action.Tags)
	}
	if action.Location != "balcony" {
		t.Fatalf("unexpected location: %q", action.Location)
	}
}

func TestExtractActionFirstBlockWins(t *testing.T) {
	// Arrange
	text := "```schedule-action\n" +
		`{"action":"create_reminder","title":"First"}` + "\n```\n" +
		"```schedule-action\n" +
		`{"action":"create_reminder","title":"Second"}` + "\n```"

	// Act
	action, _ := ExtractAction(text)

	// Assert
	if action == nil || action.Title != "First" {
		t.Fatalf("expected first block to win, got %+v", action)
	}
}

func TestExtractActionRepairsSloppyJSON(t *testing.T) {
	// Arrange: trailing comma and single quotes, the usual model output damage.
	text := "```schedule-action\n" +
		"{'action': 'create_reminder', 'title': 'Pay rent',}\n" +
		"```"

	// Act
	action, cleaned := ExtractAction(text)

	// Assert
	if action == nil {
		t.Fatal("expected repaired action, got nil")
	}
	if action.Title != "Pay rent" {
		t.Fatalf("unexpected title: %q", action.Title)
	}
	if cleaned != "" {
		t.Fatalf("expected empty cleaned text, got %q", cleaned)
	}
}

func TestExtractActionNoBlock(t *testing.T) {
	// Act
	action, cleaned := ExtractAction("just a normal reply")

	// Assert
	if action != nil {
		t.Fatalf("expected no action, got %+v", action)
	}
	if cleaned != "just a normal reply" {
		t.Fatalf("text should pass through untouched, got %q", cleaned)
	}
}

func TestExtractActionMalformedBlockStillStripped(t *testing.T) {
	// Arrange
	text := "Before.\n\n```schedule-action\nnot even close to json {{{]\n```\n\nAfter."

	// Act
	action, cleaned := ExtractAction(text)

	// Assert
	if action != nil {
		t.Fatalf("expected no action from malformed block, got %+v", action)
	}
	if cleaned != "Before.\n\nAfter." {
		t.Fatalf("unexpected cleaned text: %q", cleaned)
	}
}

func TestExtractActionWrongTypeIgnored(t *testing.T) {
	// Arrange
	text := "```schedule-action\n" +
		`{"action":"delete_everything","title":"nope"}` + "\n```"

	// Act
	action, _ := ExtractAction(text)

	// Assert
	if action != nil {
		t.Fatalf("expected unknown action type to be ignored, got %+v", action)
	}
}

func TestExtractActionMissingTitleIgnored(t *testing.T) {
	// Arrange
	text := "```schedule-action\n" +
		`{"action":"create_reminder","title":"  "}` + "\n```"

	// Act
	action, _ := ExtractAction(text)

	// Assert
	if action != nil {
		t.Fatalf("expected blank title to be rejected, got %+v", action)
	}
}
