package store

import (
	"errors"
	"testing"
)

func TestTakeStoreItemStockUntilSoldOut(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	itemID := mustSeedItem(t, st, ctx, "Hoodie", 300, 1, true)

	if err := st.TakeStoreItemStock(ctx, itemID); err != nil {
		t.Fatalf("take stock: %v", err)
	}
	if err := st.TakeStoreItemStock(ctx, itemID); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
	if err := st.TakeStoreItemStock(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := st.RestoreStoreItemStock(ctx, itemID); err != nil {
		t.Fatalf("restore stock: %v", err)
	}
	if err := st.TakeStoreItemStock(ctx, itemID); err != nil {
		t.Fatalf("take restored stock: %v", err)
	}
}

func TestListAvailableStoreItemsHidesDisabled(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustSeedItem(t, st, ctx, "Visible", 100, 5, true)
	mustSeedItem(t, st, ctx, "Hidden", 100, 5, false)

	items, err := st.ListAvailableStoreItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Visible" {
		t.Fatalf("items = %+v, want only Visible", items)
	}
}

func TestRedemptionLifecycle(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustSeedUser(t, st, ctx, "k1", "alice", 500)
	itemID := mustSeedItem(t, st, ctx, "Hoodie", 300, 5, true)

	redID, err := st.InsertRedemption(ctx, userID, itemID, "Hoodie", 300)
	if err != nil {
		t.Fatalf("insert redemption: %v", err)
	}

	list, err := st.ListRedemptionsByUser(ctx, userID, 10, 0)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(list) != 1 || list[0].Status != RedemptionPending {
		t.Fatalf("redemptions = %+v, want one pending", list)
	}

	if err := st.UpdateRedemptionStatus(ctx, redID, RedemptionFulfilled); err != nil {
		t.Fatalf("update status: %v", err)
	}
	list, err = st.ListRedemptions(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(list) != 1 || list[0].Status != RedemptionFulfilled {
		t.Fatalf("redemptions = %+v, want one fulfilled", list)
	}

	if err := st.UpdateRedemptionStatus(ctx, "missing", RedemptionCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRaffleEntryUniquePerUser(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustSeedUser(t, st, ctx, "k1", "alice", 500)
	raffleID := mustSeedRaffle(t, st, ctx, "Weekly", RaffleActive, RaffleEntryPoints, 40)

	if _, err := st.InsertRaffleEntry(ctx, raffleID, userID, "alice"); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	if _, err := st.InsertRaffleEntry(ctx, raffleID, userID, "alice"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	entered, err := st.HasRaffleEntry(ctx, raffleID, userID)
	if err != nil {
		t.Fatalf("has entry: %v", err)
	}
	if !entered {
		t.Fatal("HasRaffleEntry = false, want true")
	}
}

func TestListRafflesWithEntryCounts(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	alice := mustSeedUser(t, st, ctx, "k1", "alice", 500)
	bob := mustSeedUser(t, st, ctx, "k2", "bob", 500)
	active := mustSeedRaffle(t, st, ctx, "Weekly", RaffleActive, RaffleEntryPoints, 40)
	mustSeedRaffle(t, st, ctx, "Done", RaffleClosed, RaffleEntryFree, 0)

	if _, err := st.InsertRaffleEntry(ctx, active, alice, "alice"); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	if _, err := st.InsertRaffleEntry(ctx, active, bob, "bob"); err != nil {
		t.Fatalf("insert entry: %v", err)
	}

	all, err := st.ListRaffles(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("list raffles: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("raffles = %d, want 2", len(all))
	}

	activeOnly, err := st.ListRaffles(ctx, RaffleActive, 10, 0)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(activeOnly) != 1 {
		t.Fatalf("active raffles = %d, want 1", len(activeOnly))
	}
	if activeOnly[0].EntryCount != 2 {
		t.Fatalf("entry count = %d, want 2", activeOnly[0].EntryCount)
	}

	entries, err := st.ListRaffleEntries(ctx, active, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
}
