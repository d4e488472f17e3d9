// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"errors"
	"slices"
	"testing"

	"github.com/julianstephens/vitalit/internal/storage"
)

// Run exercises an initialized provider returned by open.
func Run(t *testing.T, open func(t *testing.T) storage.Provider) {
	t.Run("missing key", func(t *testing.T) {
		p := open(t)
		if _, err := p.Get("nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
		if err := p.Delete("nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("put get overwrite", func(t *testing.T) {
		p := open(t)
		if err := p.Put("user_data", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := p.Put("user_data", []byte(`{"a":2}`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := p.Get("user_data")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !jsonEqual(got, `{"a":2}`) {
			t.Errorf("Get() = %s, want {\"a\":2}", got)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		p := open(t)
		for _, k := range []string{"water_intake", "language", "user_plan"} {
			if err := p.Put(k, []byte(`"`+k+`"`)); err != nil {
				t.Fatalf("Put(%s) error = %v", k, err)
			}
		}
		if err := p.Delete("language"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		keys, err := p.Keys()
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		slices.Sort(keys)
		if want := []string{"user_plan", "water_intake"}; !slices.Equal(keys, want) {
			t.Errorf("Keys() = %v, want %v", keys, want)
		}
		if _, err := p.Get("water_intake"); err != nil {
			t.Errorf("sibling key lost: %v", err)
		}
	})

	t.Run("history", func(t *testing.T) {
		p := open(t)
		h, ok := p.(storage.Historian)
		if !ok {
			t.Skip("provider keeps no history")
		}
		_ = p.Put("user_data", []byte(`{"v":1}`))
		_ = p.Put("user_data", []byte(`{"v":2}`))
		_ = p.Delete("user_data")

		revs, err := h.History("user_data", 5)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(revs) != 2 {
			t.Fatalf("History() returned %d revisions, want 2", len(revs))
		}
		if !jsonEqual(revs[0].Value, `{"v":2}`) || !jsonEqual(revs[1].Value, `{"v":1}`) {
			t.Errorf("History() = %s, %s; want newest first", revs[0].Value, revs[1].Value)
		}
		if revs[0].ReplacedAt.IsZero() {
			t.Error("revision has no timestamp")
		}

		one, _ := h.History("user_data", 1)
		if len(one) != 1 {
			t.Errorf("History(limit 1) returned %d", len(one))
		}
	})
}

// jsonEqual compares ignoring whitespace, since JSONB backends reformat.
func jsonEqual(got []byte, want string) bool {
	strip := func(b []byte) string {
		out := make([]byte, 0, len(b))
		for _, c := range b {
			if c != ' ' && c != '\n' && c != '\t' {
				out = append(out, c)
			}
		}
		return string(out)
	}
	return strip(got) == strip([]byte(want))
}
