package report

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestJSONLRecorder(t *testing.T) {
	tmp := t.TempDir()
	path := tmp + "/signals.jsonl"

	recorder, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	event := Event{Pair: "AAA/BBB", Ts: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Portfolio: 0.42, Signal: -1}
	if err := recorder.Record(event); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatalf("expected one line in recorder output")
	}
	var decoded Event
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded.Pair != event.Pair || decoded.Signal != event.Signal {
		t.Fatalf("unexpected decoded event: %+v", decoded)
	}
}

func TestJSONLRecorderDoubleClose(t *testing.T) {
	recorder, err := NewJSONLRecorder(t.TempDir() + "/signals.jsonl")
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
}

func TestJSONLRecorderRecordAfterClose(t *testing.T) {
	recorder, err := NewJSONLRecorder(t.TempDir() + "/signals.jsonl")
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := recorder.Record(Event{Pair: "AAA/BBB"}); err == nil {
		t.Fatalf("expected error recording after close")
	}
}
