package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(false, &buf)
	l.Section("parse")
	l.Log("states", "count", 17)
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestLogger_Enabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(true, &buf)
	l.Section("compile")
	l.Log("lowered", "pattern", "a|b", "states", 6)

	out := buf.String()
	for _, want := range []string{
		"=== compile ===",
		"component=lers",
		"msg=lowered",
		"pattern=a|b",
		"states=6",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "time=") {
		t.Errorf("output carries timestamps:\n%s", out)
	}
}

func TestLogger_Nil(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Error("nil logger reports enabled")
	}
	l.Log("ignored")
	l.Section("ignored")
}
