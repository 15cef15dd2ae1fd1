// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/platform/config"
)

/*
TestLoad_Defaults verifies that optional settings fall back to their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sabha")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.ReferenceCacheTTL)
	assert.Equal(t, int64(5242880), cfg.UploadMaxBytes)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.MailEnabled())
}

/*
TestLoad_MissingRequired checks that required variables are enforced.
*/
func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore hook; Unsetenv makes the variable absent.
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "JWT_PUBLIC_KEY_PATH"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := config.Load()
	assert.Error(t, err)
}
