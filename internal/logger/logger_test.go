package logger

import "testing"

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Info("no-op logger accepts entries")
}

func TestInitReplacesLogger(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	if Log == prev {
		t.Error("Init should replace the default logger")
	}
	Sync()
}
