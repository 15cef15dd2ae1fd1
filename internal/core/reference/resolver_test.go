// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/core/reference/referencetest"
)

/*
TestResolver_Resolve checks the three outcomes and their issue messages.
*/
func TestResolver_Resolve(t *testing.T) {
	store := referencetest.New()
	ids := store.Seed(reference.Star, "प्रांत")
	resolver := reference.NewResolver(store, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		want  reference.Resolution
	}{
		{"exact", "प्रांत", reference.Resolution{ID: ids[0]}},
		{"padded", "  प्रांत ", reference.Resolution{ID: ids[0]}},
		{"blank", "   ", reference.Resolution{Issue: "Missing star_id"}},
		{"unknown", "जिला", reference.Resolution{Issue: "Invalid star_id: जिला"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(ctx, reference.Star, "star_id", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Issue == "", got.OK())
		})
	}
}

/*
TestResolver_Memoizes verifies that a name is looked up once per resolver,
including concurrent callers and Unicode-equivalent spellings.
*/
func TestResolver_Memoizes(t *testing.T) {
	store := referencetest.New()
	store.Seed(reference.Dayitva, "\u0915\u093c") // ka + nukta
	resolver := reference.NewResolver(store, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spelling := "\u0958" // precomposed qa, NFC-equivalent
			if i%2 == 0 {
				spelling = "\u0915\u093c"
			}
			id, found, err := resolver.ID(ctx, reference.Dayitva, spelling)
			assert.NoError(t, err)
			assert.True(t, found)
			results[i] = id
		}()
	}
	wg.Wait()

	for _, id := range results {
		assert.Equal(t, results[0], id)
	}
	assert.Equal(t, int64(1), store.Calls.Load())
}

/*
TestResolver_ResolveMany drops unknown and duplicate names.
*/
func TestResolver_ResolveMany(t *testing.T) {
	store := referencetest.New()
	ids := store.Seed(reference.Dayitva, "प्रांत प्रचारक", "सह प्रांत प्रचारक")
	resolver := reference.NewResolver(store, nil)

	got, err := resolver.ResolveMany(context.Background(), reference.Dayitva,
		[]string{"सह प्रांत प्रचारक", "नहीं है", "प्रांत प्रचारक", "सह प्रांत प्रचारक", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[0]}, got)

	none, err := resolver.ResolveMany(context.Background(), reference.Dayitva, []string{"नहीं है"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

/*
TestResolver_StoreErrorNotMemoized ensures a transient failure is retried on the next call.
*/
func TestResolver_StoreErrorNotMemoized(t *testing.T) {
	store := referencetest.New()
	store.Seed(reference.Kshetra, "मध्य")
	store.Err = errors.New("connection refused")
	resolver := reference.NewResolver(store, nil)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, reference.Kshetra, "kshetra_id", "मध्य")
	require.Error(t, err)

	store.Err = nil
	resolution, err := resolver.Resolve(ctx, reference.Kshetra, "kshetra_id", "मध्य")
	require.NoError(t, err)
	assert.True(t, resolution.OK())
}

func TestParseVariant(t *testing.T) {
	for _, in := range []string{"prant", "Prants", " prants "} {
		variant, ok := reference.ParseVariant(in)
		assert.True(t, ok, in)
		assert.Equal(t, reference.Prant, variant)
	}

	_, ok := reference.ParseVariant("districts")
	assert.False(t, ok)
	assert.Equal(t, "sanghatan_id", reference.Sanghatan.Field())
}
