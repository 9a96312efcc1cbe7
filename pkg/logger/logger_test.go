package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ComponentField(t *testing.T) {
	log := New("debug", "worker")
	buf := &bytes.Buffer{}
	log.SetOutput(buf)

	log.WithField("job_id", "42").Info("Job completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "worker", entry["component"])
	assert.Equal(t, "42", entry["job_id"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := New("verbose", "")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
