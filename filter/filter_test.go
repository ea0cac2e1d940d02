package filter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/qbitgate/gateway"
)

func sampleTorrents() []gateway.Torrent {
	return []gateway.Torrent{
		{
			Hash:     "aaa",
			Name:     "Ubuntu 24.04 Desktop",
			State:    gateway.StateSeeding,
			Size:     6 << 30,
			Progress: 1,
			AddDate:  time.Now().AddDate(0, 0, -40),
			Seeds:    12,
		},
		{
			Hash:     "bbb",
			Name:     "Debian 12 netinst",
			State:    gateway.StateDownloading,
			Size:     600 << 20,
			Progress: 0.25,
			AddDate:  time.Now().AddDate(0, 0, -2),
			Seeds:    3,
		},
		{
			Hash:     "ccc",
			Name:     "Fedora Workstation",
			State:    gateway.StatePaused,
			Size:     2 << 30,
			Progress: 0.9,
			AddDate:  time.Now().AddDate(0, 0, -10),
		},
	}
}

func hashes(torrents []gateway.Torrent) []string {
	out := make([]string, 0, len(torrents))
	for _, t := range torrents {
		out = append(out, t.Hash)
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `contains(Name, "ubuntu")`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(Name, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "not a boolean",
			expression: `1 + 2`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `isState("Seeding") and Size > GiB(1) and daysSince(Added) > 30`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewCompiler().Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`State == "Seeding"`, []string{"aaa"}},
		{`isState("downloading") or isState("paused")`, []string{"bbb", "ccc"}},
		{`Size >= GiB(2)`, []string{"aaa", "ccc"}},
		{`Progress < 1 and Seeds == 0`, []string{"ccc"}},
		{`startsWith(Name, "deb")`, []string{"bbb"}},
		{`daysSince(Added) > 7`, []string{"aaa", "ccc"}},
		{`Torrent.Hash == "bbb"`, []string{"bbb"}},
		{`NoSuchField == 1`, []string{}},
	}

	compiler := NewCompiler()
	torrents := sampleTorrents()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			got, err := NewEvaluator().Apply(context.Background(), f, torrents)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hashes(got))
		})
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`Seeds > 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  Seeds > 1  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, _ = compiler.Compile(`Seeds > 2`)
	_, _ = compiler.Compile(`Seeds > 3`)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())

	uncached := NewCompiler(WithCache(0))
	_, err = uncached.Compile(`Seeds > 1`)
	require.NoError(t, err)
	assert.Equal(t, 0, uncached.Size())
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewCompiler(WithCustomFunctions(map[string]any{
		"always":  func() bool { return true },
		"isLarge": func(size int64) bool { return size > 1<<30 },
	}))

	f, err := compiler.Compile(`always()`)
	require.NoError(t, err)
	assert.True(t, f.Match(gateway.Torrent{Hash: "aaa"}))

	f, err = compiler.Compile(`isLarge(Size) and contains(Name, "ubuntu")`)
	require.NoError(t, err)
	got, err := NewEvaluator().Apply(context.Background(), f, sampleTorrents())
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa"}, hashes(got))
}

func TestApplyConcurrentKeepsOrder(t *testing.T) {
	torrents := make([]gateway.Torrent, 0, 1000)
	for i := range 1000 {
		torrents = append(torrents, gateway.Torrent{Hash: fmt.Sprintf("%04d", i), Seeds: int64(i % 3)})
	}

	f, err := NewCompiler().Compile(`Seeds == 0`)
	require.NoError(t, err)

	got, err := NewEvaluator(WithWorkers(4), WithBatchSize(50)).Apply(context.Background(), f, torrents)
	require.NoError(t, err)
	require.Len(t, got, 334)
	for i, tr := range got {
		assert.Equal(t, fmt.Sprintf("%04d", i*3), tr.Hash)
	}
}

func TestApplyCancelled(t *testing.T) {
	torrents := make([]gateway.Torrent, 500)
	f, err := NewCompiler().Compile(`true`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewEvaluator(WithBatchSize(10)).Apply(ctx, f, torrents)
	assert.ErrorIs(t, err, context.Canceled)
}
