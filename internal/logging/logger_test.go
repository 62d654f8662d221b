package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevelAndFormat(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"json debug", "debug", "json", logrus.DebugLevel, true},
		{"text warn", "warn", "TEXT", logrus.WarnLevel, false},
		{"bad level", "loud", "", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level, tt.format)
			if logger.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.wantLevel)
			}
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("json formatter = %v, want %v", isJSON, tt.wantJSON)
			}
		})
	}
}
