package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCollectTopicsFromArgs(t *testing.T) {
	topics, err := collectTopics([]string{"first topic", "  second topic  ", ""}, "")
	if err != nil {
		t.Fatalf("collectTopics() error = %v", err)
	}
	want := []string{"first topic", "second topic"}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("collectTopics() = %v, want %v", topics, want)
	}
}

func TestCollectTopicsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.txt")
	content := "# planned for this week\nfirst topic\n\n  second topic\n# done already\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	topics, err := collectTopics([]string{"from args"}, path)
	if err != nil {
		t.Fatalf("collectTopics() error = %v", err)
	}
	want := []string{"from args", "first topic", "second topic"}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("collectTopics() = %v, want %v", topics, want)
	}
}

func TestCollectTopicsMissingFile(t *testing.T) {
	_, err := collectTopics(nil, filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("Expected error for missing topics file")
	}
}
