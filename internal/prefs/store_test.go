package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("connection refused")
}

func (failingKV) Del(context.Context, string) error {
	return errors.New("connection refused")
}

func TestStore_NilBackendAnswersDefaults(t *testing.T) {
	ctx := context.Background()
	store := New(zerolog.Nop(), nil)

	if store.Available() {
		t.Fatal("store with nil backend reports available")
	}
	if got := store.SelectedSound(ctx, "u1"); got != DefaultSound {
		t.Fatalf("sound = %q, want %q", got, DefaultSound)
	}
	if got := store.CustomSoundURI(ctx, "u1"); got != nil {
		t.Fatalf("uri = %q, want nil", *got)
	}

	// Writes are dropped, not panics.
	store.SetSelectedSound(ctx, "u1", "chime")
	uri := "content://sounds/42"
	store.SetCustomSoundURI(ctx, "u1", &uri)
}

func TestStore_SoundRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New(zerolog.Nop(), newFakeKV())

	if got := store.SelectedSound(ctx, "u1"); got != DefaultSound {
		t.Fatalf("unset sound = %q, want %q", got, DefaultSound)
	}

	store.SetSelectedSound(ctx, "u1", "chime")
	if got := store.SelectedSound(ctx, "u1"); got != "chime" {
		t.Fatalf("sound = %q, want chime", got)
	}
	if got := store.SelectedSound(ctx, "u2"); got != DefaultSound {
		t.Fatalf("other user's sound = %q, want %q", got, DefaultSound)
	}

	store.SetSelectedSound(ctx, "u1", "")
	if got := store.SelectedSound(ctx, "u1"); got != DefaultSound {
		t.Fatalf("cleared sound = %q, want %q", got, DefaultSound)
	}
}

func TestStore_CustomURIRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := New(zerolog.Nop(), kv)

	if got := store.CustomSoundURI(ctx, "u1"); got != nil {
		t.Fatalf("unset uri = %q, want nil", *got)
	}

	uri := "content://sounds/42"
	store.SetCustomSoundURI(ctx, "u1", &uri)
	got := store.CustomSoundURI(ctx, "u1")
	if got == nil || *got != uri {
		t.Fatalf("uri = %v, want %q", got, uri)
	}

	store.SetCustomSoundURI(ctx, "u1", nil)
	if got := store.CustomSoundURI(ctx, "u1"); got != nil {
		t.Fatalf("uri after clear = %q, want nil", *got)
	}
	if _, ok := kv.data[customURIKey("u1")]; ok {
		t.Fatal("clearing the uri left the key behind")
	}
}

func TestStore_FailingBackendDegradesToDefaults(t *testing.T) {
	ctx := context.Background()
	store := New(zerolog.Nop(), failingKV{})

	if got := store.SelectedSound(ctx, "u1"); got != DefaultSound {
		t.Fatalf("sound = %q, want %q", got, DefaultSound)
	}
	if got := store.CustomSoundURI(ctx, "u1"); got != nil {
		t.Fatalf("uri = %q, want nil", *got)
	}

	store.SetSelectedSound(ctx, "u1", "chime")
	uri := "content://sounds/42"
	store.SetCustomSoundURI(ctx, "u1", &uri)
	store.SetCustomSoundURI(ctx, "u1", nil)
}
