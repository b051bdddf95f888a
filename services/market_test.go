package services

import (
	"errors"
	"testing"
	"time"

	"kasif-platform/models"
)

func testClock() time.Time {
	return time.Date(2024, 9, 6, 14, 0, 0, 0, time.UTC)
}

func TestApplyPurchase(t *testing.T) {
	item := func() *models.MarketItem {
		return &models.MarketItem{
			ID:       "kantin-ceki",
			Title:    "Kantin Çeki",
			Price:    500,
			Currency: models.CurrencyGP,
			Stock:    10,
		}
	}

	t.Run("debits GP and enqueues pending", func(t *testing.T) {
		s := &models.Student{Points: 500, NamazPoints: 200}
		it := item()
		p, err := applyPurchase(s, it, testClock())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Points != 0 {
			t.Errorf("Points = %d, want 0", s.Points)
		}
		if len(s.PendingItems) != 1 {
			t.Fatalf("PendingItems = %d, want 1", len(s.PendingItems))
		}
		if p.ItemID != "kantin-ceki" || p.Price != 500 || p.Currency != models.CurrencyGP {
			t.Errorf("pending snapshot wrong: %+v", p)
		}
		// Stock is untouched until approval.
		if it.Stock != 10 {
			t.Errorf("Stock = %d, want 10", it.Stock)
		}
	})

	t.Run("insufficient balance leaves no trace", func(t *testing.T) {
		s := &models.Student{Points: 500, NamazPoints: 200}
		it := item()
		it.Price = 750
		_, err := applyPurchase(s, it, testClock())
		if !errors.Is(err, ErrInsufficientGP) {
			t.Fatalf("err = %v, want ErrInsufficientGP", err)
		}
		if s.Points != 500 || s.NamazPoints != 200 {
			t.Errorf("balances changed: GP=%d NP=%d", s.Points, s.NamazPoints)
		}
		if len(s.PendingItems) != 0 {
			t.Errorf("PendingItems = %d, want 0", len(s.PendingItems))
		}
	})

	t.Run("out of stock checked before balance", func(t *testing.T) {
		s := &models.Student{Points: 0}
		it := item()
		it.Stock = 0
		if _, err := applyPurchase(s, it, testClock()); !errors.Is(err, ErrOutOfStock) {
			t.Fatalf("err = %v, want ErrOutOfStock", err)
		}
	})

	t.Run("negative price cannot mint points", func(t *testing.T) {
		s := &models.Student{Points: 0}
		it := item()
		it.Price = -100
		if _, err := applyPurchase(s, it, testClock()); !errors.Is(err, ErrMissingField) {
			t.Fatalf("err = %v, want ErrMissingField", err)
		}
		if s.Points != 0 {
			t.Errorf("Points = %d after refused purchase, want 0", s.Points)
		}
		if len(s.PendingItems) != 0 {
			t.Errorf("PendingItems = %d, want 0", len(s.PendingItems))
		}
	})

	t.Run("duplicate pending for same item refused", func(t *testing.T) {
		s := &models.Student{Points: 1000}
		it := item()
		if _, err := applyPurchase(s, it, testClock()); err != nil {
			t.Fatalf("first purchase: %v", err)
		}
		_, err := applyPurchase(s, it, testClock())
		if !errors.Is(err, ErrDuplicatePending) {
			t.Fatalf("err = %v, want ErrDuplicatePending", err)
		}
		if s.Points != 500 {
			t.Errorf("Points = %d, want 500 (single debit)", s.Points)
		}
	})
}

func TestCreateItemValidation(t *testing.T) {
	// Validation runs before any DB access, so a zero-value service suffices.
	svc := &MarketService{}
	tests := []struct {
		name string
		item models.MarketItem
	}{
		{name: "missing title", item: models.MarketItem{ClassCode: "1453", Price: 500}},
		{name: "missing class code", item: models.MarketItem{Title: "Kantin Çeki", Price: 500}},
		{name: "zero price", item: models.MarketItem{Title: "Kantin Çeki", ClassCode: "1453", Price: 0}},
		{name: "negative price", item: models.MarketItem{Title: "Kantin Çeki", ClassCode: "1453", Price: -100}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := tc.item
			if err := svc.CreateItem(&it); !errors.Is(err, ErrMissingField) {
				t.Errorf("err = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestApplyFulfillment(t *testing.T) {
	s := &models.Student{
		Points: 0,
		PendingItems: models.PendingItemList{
			{ID: "p1", ItemID: "kantin-ceki", Price: 500, Currency: models.CurrencyGP},
		},
	}

	p, err := applyFulfillment(s, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ItemID != "kantin-ceki" {
		t.Errorf("fulfilled item = %s, want kantin-ceki", p.ItemID)
	}
	if len(s.PendingItems) != 0 {
		t.Errorf("PendingItems = %d, want 0", len(s.PendingItems))
	}
	if len(s.Inventory) != 1 || s.Inventory[0] != "kantin-ceki" {
		t.Errorf("Inventory = %v, want [kantin-ceki]", s.Inventory)
	}
	// No credit on fulfillment: the debit happened at purchase time.
	if s.Points != 0 {
		t.Errorf("Points = %d, want 0", s.Points)
	}

	if _, err := applyFulfillment(s, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second fulfillment err = %v, want ErrNotFound", err)
	}
}

func TestApplyRefund(t *testing.T) {
	s := &models.Student{
		NamazPoints: 0,
		PendingItems: models.PendingItemList{
			{ID: "p1", ItemID: "tesbih", Price: 200, Currency: models.CurrencyNP},
		},
	}

	p, err := applyRefund(s, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Price != 200 {
		t.Errorf("refunded price = %d, want 200", p.Price)
	}
	if s.NamazPoints != 200 {
		t.Errorf("NamazPoints = %d, want 200 (snapshot refund)", s.NamazPoints)
	}
	if len(s.PendingItems) != 0 {
		t.Errorf("PendingItems = %d, want 0", len(s.PendingItems))
	}
	if len(s.Inventory) != 0 {
		t.Errorf("Inventory = %v, want empty", s.Inventory)
	}

	// Refunding a resolved purchase again must not double-credit.
	if _, err := applyRefund(s, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second refund err = %v, want ErrNotFound", err)
	}
	if s.NamazPoints != 200 {
		t.Errorf("NamazPoints = %d after second refund, want 200", s.NamazPoints)
	}
}

func TestRefundUsesSnapshotPrice(t *testing.T) {
	// Catalog price changes after purchase must not affect the refund.
	item := &models.MarketItem{ID: "boyama-kitabi", Title: "Boyama Kitabı", Price: 300, Currency: models.CurrencyGP, Stock: 5}
	s := &models.Student{Points: 300}
	p, err := applyPurchase(s, item, testClock())
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	item.Price = 900

	if _, err := applyRefund(s, p.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if s.Points != 300 {
		t.Errorf("Points = %d, want 300 (snapshot price)", s.Points)
	}
}
