package storage

import (
	"bytes"
	"path/filepath"
	"testing"
)

// storeTestSuite runs the same behavioral checks against any Store
// implementation.
func storeTestSuite(t *testing.T, newStore func() (Store, error)) {
	t.Run("CreateBucketIsIdempotent", func(t *testing.T) {
		s, err := newStore()
		if err != nil {
			t.Fatalf("newStore: %v", err)
		}
		defer s.Close()

		if err := s.CreateBucket([]byte("b")); err != nil {
			t.Fatalf("CreateBucket: %v", err)
		}
		if err := s.CreateBucket([]byte("b")); err != nil {
			t.Errorf("CreateBucket should be idempotent: %v", err)
		}
		exists, err := s.BucketExists([]byte("b"))
		if err != nil || !exists {
			t.Errorf("BucketExists = %v, %v; want true, nil", exists, err)
		}
	})

	t.Run("DeleteBucketIsIdempotent", func(t *testing.T) {
		s, err := newStore()
		if err != nil {
			t.Fatalf("newStore: %v", err)
		}
		defer s.Close()

		s.CreateBucket([]byte("b"))
		if err := s.DeleteBucket([]byte("b")); err != nil {
			t.Fatalf("DeleteBucket: %v", err)
		}
		if err := s.DeleteBucket([]byte("b")); err != nil {
			t.Errorf("DeleteBucket should be idempotent: %v", err)
		}
		exists, _ := s.BucketExists([]byte("b"))
		if exists {
			t.Error("bucket should not exist after deletion")
		}
	})

	t.Run("PutGetMissingKeyIsNilNotError", func(t *testing.T) {
		s, err := newStore()
		if err != nil {
			t.Fatalf("newStore: %v", err)
		}
		defer s.Close()

		s.CreateBucket([]byte("b"))
		if err := s.Put([]byte("b"), []byte("k"), []byte("v")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := s.Get([]byte("b"), []byte("k"))
		if err != nil || !bytes.Equal(got, []byte("v")) {
			t.Errorf("Get = %q, %v; want %q, nil", got, err, "v")
		}

		got, err = s.Get([]byte("b"), []byte("nope"))
		if err != nil || got != nil {
			t.Errorf("Get missing key = %q, %v; want nil, nil", got, err)
		}
	})

	t.Run("GetPutOnMissingBucketErrors", func(t *testing.T) {
		s, err := newStore()
		if err != nil {
			t.Fatalf("newStore: %v", err)
		}
		defer s.Close()

		if _, err := s.Get([]byte("nope"), []byte("k")); err == nil {
			t.Error("Get on missing bucket should error")
		}
		if err := s.Put([]byte("nope"), []byte("k"), []byte("v")); err == nil {
			t.Error("Put on missing bucket should error")
		}
	})

	t.Run("ForEachVisitsEveryPair", func(t *testing.T) {
		s, err := newStore()
		if err != nil {
			t.Fatalf("newStore: %v", err)
		}
		defer s.Close()

		s.CreateBucket([]byte("b"))
		want := map[string]string{"k1": "v1", "k2": "v2", "k3": "v3"}
		for k, v := range want {
			s.Put([]byte("b"), []byte(k), []byte(v))
		}

		got := make(map[string]string)
		err = s.ForEach([]byte("b"), func(k, v []byte) error {
			got[string(k)] = string(v)
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("ForEach visited %d pairs, want %d", len(got), len(want))
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("key %s = %s, want %s", k, got[k], v)
			}
		}
	})
}

func TestBboltStore(t *testing.T) {
	storeTestSuite(t, func() (Store, error) {
		return OpenBbolt(filepath.Join(t.TempDir(), "store.db"))
	})
}

func TestMemoryStore(t *testing.T) {
	storeTestSuite(t, func() (Store, error) {
		return NewMemoryStore(), nil
	})
}

type jsonPayload struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestPutJSONForEachJSONRoundTrips(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	s.CreateBucket([]byte("b"))
	want := map[string]jsonPayload{
		"a": {Name: "a", Value: 1},
		"b": {Name: "b", Value: 2},
	}
	for k, v := range want {
		if err := PutJSON(s, []byte("b"), []byte(k), v); err != nil {
			t.Fatalf("PutJSON: %v", err)
		}
	}

	got := make(map[string]jsonPayload)
	err := ForEachJSON(s, []byte("b"), func(k []byte, v jsonPayload) error {
		got[string(k)] = v
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachJSON: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %s = %+v, want %+v", k, got[k], v)
		}
	}
}

func TestPutStringGetString(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	s.CreateBucket([]byte("meta"))
	if err := PutString(s, []byte("meta"), "schema", []byte("v1.0.0")); err != nil {
		t.Fatalf("PutString: %v", err)
	}
	got, err := GetString(s, []byte("meta"), "schema")
	if err != nil || string(got) != "v1.0.0" {
		t.Errorf("GetString = %q, %v; want v1.0.0, nil", got, err)
	}
}
