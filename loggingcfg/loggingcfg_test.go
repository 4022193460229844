package loggingcfg_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/fjc-oai/tiny-interpreter/loggingcfg"
)

func TestConfigureSetsDebugLevel(t *testing.T) {
	loggingcfg.Configure(loggingcfg.Options{Debug: true})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestConfigureDefaultsToInfoLevel(t *testing.T) {
	t.Setenv("LOX_DEBUG", "")
	loggingcfg.Configure(loggingcfg.Options{Debug: false})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestLoxDebugEnvVarEnablesDebugLevel(t *testing.T) {
	t.Setenv("LOX_DEBUG", "1")
	loggingcfg.Configure(loggingcfg.Options{Debug: false})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
