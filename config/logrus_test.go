package config

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLogError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	LogError(logger, "cron", "denormalizerefresh", "refresh failed", []string{"x"}, errors.New("boom"))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no entry logged")
	}
	if entry.Level != logrus.ErrorLevel || entry.Message != "boom" {
		t.Errorf("entry = %v %q, want error boom", entry.Level, entry.Message)
	}
	if entry.Data["module"] != "cron" || entry.Data["funcName"] != "denormalizerefresh" || entry.Data["context"] != "refresh failed" {
		t.Errorf("fields = %v", entry.Data)
	}
	if _, ok := entry.Data["data"]; !ok {
		t.Error("data field missing")
	}

	LogError(logger, "cmd", "Execute", "command failed", nil, errors.New("x"))
	if _, ok := hook.LastEntry().Data["data"]; ok {
		t.Error("data field set for nil data")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	if got := NewLogger("debug", "json").GetLevel(); got != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
	if got := NewLogger("nonsense", "").GetLevel(); got != logrus.InfoLevel {
		t.Errorf("level = %v, want info", got)
	}
}
