package monitoring

import (
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	// A nil logger becomes a no-op and must not panic.
	SetLogger(nil)
	Logf("test message")

	captured := false
	SetLogger(func(format string, v ...interface{}) {
		captured = true
	})
	Logf("test")
	if !captured {
		t.Error("Replacement logger should have been called")
	}
}

func TestDebugfRespectsVerbose(t *testing.T) {
	original := Logf
	originalVerbose := Verbose
	defer func() {
		Logf = original
		Verbose = originalVerbose
	}()

	count := 0
	SetLogger(func(format string, v ...interface{}) {
		count++
	})

	Verbose = false
	Debugf("suppressed")
	if count != 0 {
		t.Errorf("Debugf logged with Verbose=false, count=%d", count)
	}

	Verbose = true
	Debugf("emitted")
	if count != 1 {
		t.Errorf("Debugf did not log with Verbose=true, count=%d", count)
	}
}
