package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCheckUpdateFile(t *testing.T) {
	flagPath := filepath.Join(t.TempDir(), ".update")
	shutdownChan := make(chan bool, 1)

	if checkUpdateFile(flagPath, shutdownChan) {
		t.Fatalf("Expected no shutdown without flag file")
	}

	if err := os.WriteFile(flagPath, nil, 0644); err != nil {
		t.Fatalf("Failed to create flag file: %v", err)
	}
	if !checkUpdateFile(flagPath, shutdownChan) {
		t.Fatalf("Expected shutdown when flag file exists")
	}

	select {
	case <-shutdownChan:
	default:
		t.Errorf("Expected shutdown signal on channel")
	}
	if _, err := os.Stat(flagPath); !os.IsNotExist(err) {
		t.Errorf("Flag file should have been renamed")
	}
	if _, err := os.Stat(flagPath + ".todo"); err != nil {
		t.Errorf("Expected %s.todo to exist: %v", flagPath, err)
	}
}

func TestCheckUpdateFileAlreadySignaled(t *testing.T) {
	flagPath := filepath.Join(t.TempDir(), ".update")
	shutdownChan := make(chan bool, 1)
	shutdownChan <- true

	if err := os.WriteFile(flagPath, nil, 0644); err != nil {
		t.Fatalf("Failed to create flag file: %v", err)
	}
	// a full channel must not block the monitor
	if !checkUpdateFile(flagPath, shutdownChan) {
		t.Errorf("Expected shutdown to be reported")
	}
}

func TestMonitorUpdateFile(t *testing.T) {
	flagPath := filepath.Join(t.TempDir(), ".update")
	shutdownChan := make(chan bool, 1)
	done := make(chan struct{})

	go func() {
		monitorUpdateFile(flagPath, 10*time.Millisecond, shutdownChan)
		close(done)
	}()

	if err := os.WriteFile(flagPath, nil, 0644); err != nil {
		t.Fatalf("Failed to create flag file: %v", err)
	}

	select {
	case <-shutdownChan:
	case <-time.After(5 * time.Second):
		t.Fatalf("Monitor did not signal shutdown")
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Monitor did not return after signalling")
	}
}

func TestParseHostList(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"capstone.example.com", []string{"capstone.example.com"}},
		{" a.example.com , b.example.com:8080 ,,", []string{"a.example.com", "b.example.com:8080"}},
	}

	for _, tc := range testCases {
		got := parseHostList(tc.input)
		if len(got) != len(tc.expected) {
			t.Errorf("parseHostList(%q) = %q, expected %q", tc.input, got, tc.expected)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("parseHostList(%q) = %q, expected %q", tc.input, got, tc.expected)
				break
			}
		}
	}
}
