package repository

import (
	"testing"
)

func TestCreateSupplyItem(t *testing.T) {
	repo := newTestRepo(t)
	supply := mustCreateSupply(t, repo)

	item, repoErr := repo.CreateSupplyItem(*supply.EditPin, SupplyItemCreate{
		SupplyID:    supply.ID,
		TotalNumber: 30,
		Tag:         "groceries",
		Name:        strPtr("bottled water"),
		Unit:        strPtr("box"),
	})
	if repoErr != nil {
		t.Fatalf("unexpected error: %v", repoErr)
	}
	if item.SupplyID != supply.ID {
		t.Errorf("expected item under supply %s, got %s", supply.ID, item.SupplyID)
	}

	stored, _ := repo.GetSupply(supply.ID)
	if len(stored.Items) != 1 {
		t.Errorf("expected 1 item on parent, got %d", len(stored.Items))
	}
}

func TestCreateSupplyItemWrongPin(t *testing.T) {
	repo := newTestRepo(t)
	supply := mustCreateSupply(t, repo)

	_, repoErr := repo.CreateSupplyItem("111111", SupplyItemCreate{
		SupplyID:    supply.ID,
		TotalNumber: 30,
		Tag:         "groceries",
	})
	if repoErr == nil || repoErr.Code != ErrCodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", repoErr)
	}
}

func TestCreateSupplyItemMissingParent(t *testing.T) {
	repo := newTestRepo(t)

	_, repoErr := repo.CreateSupplyItem("123456", SupplyItemCreate{
		SupplyID:    "missing",
		TotalNumber: 30,
		Tag:         "groceries",
	})
	if repoErr == nil || repoErr.Code != ErrCodeNotFound {
		t.Fatalf("expected not found, got %v", repoErr)
	}
}

func TestListSupplyItemsFilters(t *testing.T) {
	repo := newTestRepo(t)
	first := mustCreateSupply(t, repo,
		SupplyItemSpec{TotalNumber: 10, Tag: "food"},
		SupplyItemSpec{TotalNumber: 10, Tag: "medical_supplies"},
	)
	mustCreateSupply(t, repo, SupplyItemSpec{TotalNumber: 10, Tag: "food"})

	_, total, repoErr := repo.ListSupplyItems("", "", 50, 0)
	if repoErr != nil {
		t.Fatalf("unexpected error: %v", repoErr)
	}
	if total != 3 {
		t.Errorf("expected 3 items without filters, got %d", total)
	}

	_, total, _ = repo.ListSupplyItems(first.ID, "", 50, 0)
	if total != 2 {
		t.Errorf("expected 2 items for supply filter, got %d", total)
	}

	_, total, _ = repo.ListSupplyItems(first.ID, "food", 50, 0)
	if total != 1 {
		t.Errorf("expected 1 item for supply+tag filter, got %d", total)
	}
}

func TestPatchSupplyItem(t *testing.T) {
	repo := newTestRepo(t)
	supply := mustCreateSupply(t, repo, SupplyItemSpec{TotalNumber: 10, ReceivedCount: 2, Tag: "food"})
	itemID := supply.Items[0].ID

	item, repoErr := repo.PatchSupplyItem(itemID, *supply.EditPin, SupplyItemPatch{
		ReceivedCount: intPtr(8),
		Unit:          strPtr("carton"),
	})
	if repoErr != nil {
		t.Fatalf("unexpected error: %v", repoErr)
	}
	if item.ReceivedCount != 8 {
		t.Errorf("expected received_count 8, got %d", item.ReceivedCount)
	}
	if item.TotalNumber != 10 {
		t.Errorf("omitted total_number must keep stored value, got %d", item.TotalNumber)
	}
	if item.Supply != nil {
		t.Error("patched item must not embed its parent supply")
	}
}

func TestPatchSupplyItemPairAgainstStored(t *testing.T) {
	repo := newTestRepo(t)
	supply := mustCreateSupply(t, repo, SupplyItemSpec{TotalNumber: 10, ReceivedCount: 2, Tag: "food"})
	itemID := supply.Items[0].ID

	// received_count alone is checked against the stored total_number.
	_, repoErr := repo.PatchSupplyItem(itemID, *supply.EditPin, SupplyItemPatch{
		ReceivedCount: intPtr(11),
	})
	if repoErr == nil || repoErr.Code != ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", repoErr)
	}

	// Lowering total_number below the stored received_count is also invalid.
	_, repoErr = repo.PatchSupplyItem(itemID, *supply.EditPin, SupplyItemPatch{
		TotalNumber: intPtr(1),
	})
	if repoErr == nil || repoErr.Code != ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", repoErr)
	}

	// Both sides may move together as long as the pair stays consistent.
	item, repoErr := repo.PatchSupplyItem(itemID, *supply.EditPin, SupplyItemPatch{
		TotalNumber:   intPtr(20),
		ReceivedCount: intPtr(15),
	})
	if repoErr != nil {
		t.Fatalf("unexpected error: %v", repoErr)
	}
	if item.TotalNumber != 20 || item.ReceivedCount != 15 {
		t.Errorf("expected 20/15, got %d/%d", item.TotalNumber, item.ReceivedCount)
	}
}

func TestPatchSupplyItemLockedWhenEqual(t *testing.T) {
	repo := newTestRepo(t)
	supply := mustCreateSupply(t, repo, SupplyItemSpec{TotalNumber: 10, ReceivedCount: 10, Tag: "food"})
	itemID := supply.Items[0].ID

	_, repoErr := repo.PatchSupplyItem(itemID, *supply.EditPin, SupplyItemPatch{
		TotalNumber: intPtr(20),
	})
	if repoErr == nil || repoErr.Code != ErrCodeConflict {
		t.Fatalf("expected conflict on locked pair, got %v", repoErr)
	}

	// Non-quantity fields stay editable after the pair locks.
	item, repoErr := repo.PatchSupplyItem(itemID, *supply.EditPin, SupplyItemPatch{
		Name: strPtr("instant noodles"),
	})
	if repoErr != nil {
		t.Fatalf("unexpected error: %v", repoErr)
	}
	if item.Name == nil || *item.Name != "instant noodles" {
		t.Errorf("expected updated name, got %v", item.Name)
	}
}

func TestPatchSupplyItemWrongPin(t *testing.T) {
	repo := newTestRepo(t)
	supply := mustCreateSupply(t, repo, SupplyItemSpec{TotalNumber: 10, Tag: "food"})

	_, repoErr := repo.PatchSupplyItem(supply.Items[0].ID, "222222", SupplyItemPatch{
		ReceivedCount: intPtr(5),
	})
	if repoErr == nil || repoErr.Code != ErrCodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", repoErr)
	}
}
