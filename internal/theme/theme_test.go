package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qrforge/internal/prefs"
)

type fakeDocument struct {
	dark   bool
	hidden map[Icon]bool
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{hidden: map[Icon]bool{}}
}

func (d *fakeDocument) SetDark(dark bool) { d.dark = dark }
func (d *fakeDocument) IsDark() bool { return d.dark }
func (d *fakeDocument) SetIconHidden(icon Icon, hidden bool) { d.hidden[icon] = hidden }

type failingStore struct{ prefs.Store }

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func hint(dark bool) HintFunc { return func() bool { return dark } }

func TestApplyPreferenceUsesStoredValue(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument()
	c := NewController(prefs.NewMemoryStore(map[string]string{StorageKey: "dark"}), hint(false), doc)

	assert.Equal(t, ModeDark, c.ApplyPreference())
	assert.True(t, doc.dark)
	assert.False(t, doc.hidden[IconSun])
	assert.True(t, doc.hidden[IconMoon])
}

func TestApplyPreferenceFallsBackToHint(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument()
	c := NewController(prefs.NewMemoryStore(nil), hint(true), doc)
	assert.Equal(t, ModeDark, c.ApplyPreference())

	doc = newFakeDocument()
	c = NewController(prefs.NewMemoryStore(nil), nil, doc)
	assert.Equal(t, ModeLight, c.ApplyPreference())
	assert.False(t, doc.dark)
	assert.True(t, doc.hidden[IconSun])
	assert.False(t, doc.hidden[IconMoon])
}

func TestStoredLightOverridesDarkHint(t *testing.T) {
	t.Parallel()

	c := NewController(prefs.NewMemoryStore(map[string]string{StorageKey: "light"}), hint(true), newFakeDocument())
	assert.Equal(t, ModeLight, c.ApplyPreference())
}

func TestUnknownStoredValueReadsAsUnset(t *testing.T) {
	t.Parallel()

	c := NewController(prefs.NewMemoryStore(map[string]string{StorageKey: "sepia"}), hint(true), newFakeDocument())
	assert.Equal(t, PreferenceUnset, c.Preference())
	assert.Equal(t, ModeDark, c.Resolve())
}

func TestTogglePersistsExplicitChoice(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemoryStore(nil)
	doc := newFakeDocument()
	c := NewController(store, hint(true), doc)
	c.ApplyPreference()

	mode, err := c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ModeLight, mode)
	assert.False(t, doc.dark)

	v, ok := store.Get(StorageKey)
	require.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestDoubleToggleRestoresPersistedPreference(t *testing.T) {
	t.Parallel()

	for _, original := range []string{"light", "dark"} {
		store := prefs.NewMemoryStore(map[string]string{StorageKey: original})
		c := NewController(store, hint(false), newFakeDocument())
		c.ApplyPreference()

		_, err := c.Toggle()
		require.NoError(t, err)
		_, err = c.Toggle()
		require.NoError(t, err)

		// Reload with a fresh document, as a restart would.
		reloaded := NewController(store, hint(false), newFakeDocument())
		assert.Equal(t, Preference(original), reloaded.Preference())
		assert.Equal(t, original, reloaded.ApplyPreference().String())
	}
}

func TestToggleReportsStoreFailureButFlips(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument()
	c := NewController(failingStore{prefs.NewMemoryStore(nil)}, hint(false), doc)
	c.ApplyPreference()

	mode, err := c.Toggle()
	require.Error(t, err)
	assert.Equal(t, ModeDark, mode)
	assert.True(t, doc.dark)
	assert.True(t, doc.hidden[IconMoon])
}
