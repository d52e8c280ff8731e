package logging

import "testing"

func TestNewAndNoopDoNotPanic(t *testing.T) {
	l := New(true)
	l.Debugf("debug %s", "msg")
	l.Infof("info %s", "msg")
	l.Warnf("warn %s", "msg")
	l.Errorf("error %s", "msg")
	l.Sync()

	n := Noop()
	n.Debugf("debug %s", "msg")
	n.Errorf("error %s", "msg")
	n.Sync()
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Debugf("should not panic")
	l.Infof("should not panic")
	l.Warnf("should not panic")
	l.Errorf("should not panic")
	l.Sync()
}
