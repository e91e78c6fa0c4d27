package docs

import "testing"

func TestGet_KnownTopic(t *testing.T) {
	for _, want := range All() {
		got, err := Get(want.Name)
		if err != nil {
			t.Fatalf("Get(%q): %v", want.Name, err)
		}
		if got.Content == "" {
			t.Fatalf("topic %q has no content", want.Name)
		}
	}
}

func TestGet_UnknownTopic(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
}

func TestAll_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if seen[topic.Name] {
			t.Fatalf("duplicate topic name %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}
