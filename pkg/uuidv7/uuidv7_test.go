// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/pkg/uuidv7"
)

func TestNew_IsVersion7(t *testing.T) {
	id := uuidv7.New()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.True(t, uuidv7.Valid(id))
}

func TestNew_IsTimeOrdered(t *testing.T) {
	first := uuidv7.New()
	second := uuidv7.New()
	assert.Less(t, first, second)
}

func TestValid(t *testing.T) {
	assert.False(t, uuidv7.Valid(""))
	assert.False(t, uuidv7.Valid("not-a-uuid"))
	assert.False(t, uuidv7.Valid("{0190c1d2-7a4b-7c3d-8e9f-0a1b2c3d4e5f}"))
	assert.True(t, uuidv7.Valid("0190c1d2-7a4b-7c3d-8e9f-0a1b2c3d4e5f"))
}
