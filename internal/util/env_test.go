package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("DAYFLOW_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", EnvOrDefault("DAYFLOW_TEST_KEY", "fallback"))

	t.Setenv("DAYFLOW_TEST_KEY", "")
	assert.Equal(t, "fallback", EnvOrDefault("DAYFLOW_TEST_KEY", "fallback"))
}
