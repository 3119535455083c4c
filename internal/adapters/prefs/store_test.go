package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(Config{
		Path:   filepath.Join(t.TempDir(), "nested", "prefs.yaml"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	_, err := NewStore(Config{})
	assert.Error(t, err)

	store, err := NewStore(Config{Logger: &mockLogger{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, store.Path())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	prefs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), prefs)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := domain.Preferences{SidebarCollapsed: true, Theme: domain.ThemeLight, SelectedPeriod: domain.Period3M}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "selected_period: 3M")
	assert.Contains(t, string(raw), "sidebar_collapsed: true")
}

func TestSave_RejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name  string
		prefs domain.Preferences
	}{
		{name: "unknown theme", prefs: domain.Preferences{Theme: "neon", SelectedPeriod: domain.Period1D}},
		{name: "unknown period", prefs: domain.Preferences{Theme: domain.ThemeDark, SelectedPeriod: "5Y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(context.Background(), tt.prefs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ports.ErrInvalidRequest))
		})
	}

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "nothing written")
}

func TestLoad_PartialAndUnknownValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("theme: neon\nsidebar_collapsed: true\n"), 0o644))

	prefs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, prefs.SidebarCollapsed)
	assert.Equal(t, domain.ThemeDark, prefs.Theme)
	assert.Equal(t, domain.Period1M, prefs.SelectedPeriod)
}

func TestLoad_Malformed(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("theme: [unclosed"), 0o644))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}
