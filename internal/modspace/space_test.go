package modspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageLoader(body string) Loader {
	return StaticLoader(func() Page { return Page{Body: body} })
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input   string
		want    Key
		wantErr bool
	}{
		{input: "useState/01_useState", want: Key{Group: "useState", File: "01_useState"}},
		{input: "useState", wantErr: true},
		{input: "/01_useState", wantErr: true},
		{input: "useState/", wantErr: true},
		{input: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestRegister_DuplicateKey(t *testing.T) {
	s := New()
	key := Key{Group: "useState", File: "01_useState"}

	require.NoError(t, s.Register(key, pageLoader("a")))
	err := s.Register(key, pageLoader("b"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRegistered))
	assert.Equal(t, 1, s.Len())
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	s := New()

	assert.Error(t, s.Register(Key{Group: "useState"}, pageLoader("a")))
	assert.Error(t, s.Register(Key{Group: "useState", File: "01"}, nil))
	assert.Equal(t, 0, s.Len())
}

func TestMustRegister_Panics(t *testing.T) {
	s := New()
	key := Key{Group: "useRef", File: "01_useRef"}
	s.MustRegister(key, pageLoader("a"))

	assert.Panics(t, func() { s.MustRegister(key, pageLoader("b")) })
}

func TestKeys_RegistrationOrder(t *testing.T) {
	s := New()
	s.MustRegister(Key{Group: "useState", File: "02_useState"}, pageLoader("2"))
	s.MustRegister(Key{Group: "useEffect", File: "01_useEffect"}, pageLoader("e"))
	s.MustRegister(Key{Group: "useState", File: "01_useState"}, pageLoader("1"))

	keys := s.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, "useState/02_useState", keys[0].String())
	assert.Equal(t, "useEffect/01_useEffect", keys[1].String())
	assert.Equal(t, "useState/01_useState", keys[2].String())

	// Returned slice is a copy.
	keys[0] = Key{Group: "x", File: "y"}
	assert.Equal(t, "useState/02_useState", s.Keys()[0].String())
}

func TestLookup_Exact(t *testing.T) {
	s := New()
	s.MustRegister(Key{Group: "useState", File: "01_useState"}, pageLoader("view-A"))

	key, loader, ok := s.Lookup("useState", "01_useState")
	require.True(t, ok)
	assert.Equal(t, "useState/01_useState", key.String())

	mod, err := loader(context.Background())
	require.NoError(t, err)
	require.NotNil(t, mod.Default)
	assert.Equal(t, "view-A", mod.Default().Body)

	_, _, ok = s.Lookup("useState", "99_missing")
	assert.False(t, ok)
}

func TestLookup_ExactIgnoresSharedSuffix(t *testing.T) {
	s := New()
	s.MustRegister(Key{Group: "useState", File: "01_intro"}, pageLoader("useState"))

	_, _, ok := s.Lookup("State", "01_intro")
	assert.False(t, ok, "exact lookup must not match a key that only shares a suffix")
}

func TestLookupSuffix_FirstRegistrationWins(t *testing.T) {
	s := New()
	s.MustRegister(Key{Group: "useState", File: "01_intro"}, pageLoader("first"))
	s.MustRegister(Key{Group: "State", File: "01_intro"}, pageLoader("second"))

	key, loader, ok := s.LookupSuffix("State", "01_intro")
	require.True(t, ok)
	assert.Equal(t, "useState/01_intro", key.String())

	mod, err := loader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", mod.Default().Body)
}

func TestFind_DispatchesOnMode(t *testing.T) {
	s := New()
	s.MustRegister(Key{Group: "useState", File: "01_intro"}, pageLoader("a"))

	_, _, ok := s.Find(MatchExact, "State", "01_intro")
	assert.False(t, ok)

	_, _, ok = s.Find(MatchSuffix, "State", "01_intro")
	assert.True(t, ok)
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		input   string
		want    MatchMode
		wantErr bool
	}{
		{input: "", want: MatchExact},
		{input: "exact", want: MatchExact},
		{input: "SUFFIX", want: MatchSuffix},
		{input: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMatchMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
