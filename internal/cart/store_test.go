package cart

import (
	"reflect"
	"testing"
)

func TestStoreAddMergesByID(t *testing.T) {
	s := NewStore()

	s.Add(Item{ID: "001", Title: "keyboard", Price: 25}, 1)
	s.Add(Item{ID: "002", Title: "mouse", Price: 10}, 2)
	s.Add(Item{ID: "001", Title: "keyboard", Price: 25}, 3)

	want := Snapshot{
		{ID: "001", Title: "keyboard", Price: 25, Quantity: 4},
		{ID: "002", Title: "mouse", Price: 10, Quantity: 2},
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshot mismatch\ngot  %+v\nwant %+v", got, want)
	}
}

func TestStoreAddDefaultsQuantityToOne(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "001"}, 0)
	s.Add(Item{ID: "002"}, -3)

	for _, it := range s.Snapshot() {
		if it.Quantity != 1 {
			t.Fatalf("item %s quantity = %d, want 1", it.ID, it.Quantity)
		}
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "001"}, 1)
	s.Add(Item{ID: "002"}, 1)

	s.Remove("001")

	got := s.Snapshot()
	if len(got) != 1 || got[0].ID != "002" {
		t.Fatalf("unexpected snapshot after remove: %+v", got)
	}

	// removing an absent id is a no-op, not an error
	s.Remove("missing")
	if got := s.Snapshot(); len(got) != 1 {
		t.Fatalf("no-op remove changed the cart: %+v", got)
	}
}

func TestStoreSetQuantity(t *testing.T) {
	tests := map[string]struct {
		id   string
		qty  int
		want int
	}{
		"overwrite not additive": {id: "001", qty: 5, want: 5},
		"clamps at one":          {id: "001", qty: 0, want: 1},
		"negative clamps too":    {id: "001", qty: -2, want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewStore()
			s.Add(Item{ID: "001"}, 3)

			s.SetQuantity(tt.id, tt.qty)

			got := s.Snapshot()
			if len(got) != 1 {
				t.Fatalf("item was removed, want clamp: %+v", got)
			}
			if got[0].Quantity != tt.want {
				t.Fatalf("quantity = %d, want %d", got[0].Quantity, tt.want)
			}
		})
	}
}

func TestStoreSetQuantityUnknownID(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "001"}, 1)

	s.SetQuantity("missing", 7)

	got := s.Snapshot()
	if len(got) != 1 || got[0].Quantity != 1 {
		t.Fatalf("unknown id mutated the cart: %+v", got)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "001"}, 2)

	s.Clear()

	if got := s.Snapshot(); got != nil {
		t.Fatalf("cart not empty after clear: %+v", got)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "001"}, 1)

	snap := s.Snapshot()
	snap[0].Quantity = 99

	if got := s.Snapshot(); got[0].Quantity != 1 {
		t.Fatalf("mutating a snapshot leaked into the store: %+v", got)
	}
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	s := NewStore()

	var calls []Snapshot
	s.Subscribe(func(snap Snapshot) {
		calls = append(calls, snap)
	})

	s.Add(Item{ID: "001"}, 1)
	s.SetQuantity("001", 2)
	s.Remove("001")
	s.Clear()

	if len(calls) != 4 {
		t.Fatalf("subscriber called %d times, want 4", len(calls))
	}
	if calls[1][0].Quantity != 2 {
		t.Fatalf("second notification should carry updated quantity: %+v", calls[1])
	}
	if calls[3] != nil {
		t.Fatalf("clear should notify with empty snapshot: %+v", calls[3])
	}
}
