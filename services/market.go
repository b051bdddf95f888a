package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"kasif-platform/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarketService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewMarketService(db *gorm.DB) *MarketService {
	return &MarketService{DB: db, now: time.Now}
}

// applyPurchase runs the purchase preconditions in order (stock, duplicate
// pending, balance) and on success debits the snapshot price and appends a
// PendingItem. Pure: catalog stock is never touched here.
func applyPurchase(s *models.Student, item *models.MarketItem, now time.Time) (*models.PendingItem, error) {
	if item.Price <= 0 {
		// A non-positive price would flip debit into a credit.
		return nil, ErrMissingField
	}
	if item.Stock <= 0 {
		return nil, ErrOutOfStock
	}
	if s.PendingItemFor(item.ID) != nil {
		return nil, ErrDuplicatePending
	}
	if err := debit(s, item.Price, item.Currency); err != nil {
		return nil, err
	}
	p := models.PendingItem{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		ItemTitle: item.Title,
		Price:     item.Price,
		Currency:  item.Currency,
		Timestamp: now.UnixMilli(),
	}
	s.PendingItems = append(s.PendingItems, p)
	return &p, nil
}

// applyFulfillment resolves a pending purchase: drops the pending record and
// grants the item to the student's inventory. The caller has already
// re-checked and decremented catalog stock inside the same transaction.
func applyFulfillment(s *models.Student, pendingID string) (*models.PendingItem, error) {
	for i, p := range s.PendingItems {
		if p.ID == pendingID {
			s.PendingItems = append(s.PendingItems[:i], s.PendingItems[i+1:]...)
			s.Inventory = append(s.Inventory, p.ItemID)
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// applyRefund resolves a pending purchase the other way: drops the pending
// record and credits the snapshot price back. Stock was never decremented
// for a pending purchase, so there is nothing to restore on the catalog.
func applyRefund(s *models.Student, pendingID string) (*models.PendingItem, error) {
	for i, p := range s.PendingItems {
		if p.ID == pendingID {
			s.PendingItems = append(s.PendingItems[:i], s.PendingItems[i+1:]...)
			credit(s, p.Price, p.Currency)
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Purchase debits the student and enqueues a pending fulfillment record for
// instructor review. Stock is only reserved logically; it is decremented at
// approval time.
func (s *MarketService) Purchase(studentID, itemID string) (*models.Student, *models.PendingItem, error) {
	var updated *models.Student
	var pending *models.PendingItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		var item models.MarketItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		p, err := applyPurchase(student, &item, s.now())
		if err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated, pending = student, p
		log.Printf("🛒 Purchase pending: %s → %s (%d %s)", student.Username, item.ID, p.Price, p.Currency)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, pending, nil
}

// ApprovePurchase fulfills a pending item: re-checks catalog stock (shared
// across students, so the purchase-time check is not enough), decrements it,
// and grants the item. On exhausted stock the whole operation is refused and
// the pending record stays outstanding. A deleted catalog item surfaces as
// ErrNotFound rather than a silent no-op.
func (s *MarketService) ApprovePurchase(studentID, pendingID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		ref := pendingItemByID(student, pendingID)
		if ref == nil {
			return ErrNotFound
		}
		// FOR UPDATE: concurrent approvals for different students share the
		// item row, and both must not see the same last unit.
		var item models.MarketItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, "id = ?", ref.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: market item %s was deleted", ErrNotFound, ref.ItemID)
			}
			return err
		}
		if item.Stock <= 0 {
			return ErrOutOfStock
		}
		item.Stock--
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if _, err := applyFulfillment(student, pendingID); err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated = student
		log.Printf("✅ Purchase fulfilled: %s → %s (stock now %d)", student.Username, item.ID, item.Stock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RejectPurchase cancels a pending item and refunds the snapshot price.
func (s *MarketService) RejectPurchase(studentID, pendingID string) (*models.Student, error) {
	var updated *models.Student
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := lockStudent(tx, studentID)
		if err != nil {
			return err
		}
		p, err := applyRefund(student, pendingID)
		if err != nil {
			return err
		}
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		updated = student
		log.Printf("↩️ Purchase refunded: %s ← %d %s", student.Username, p.Price, p.Currency)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func pendingItemByID(s *models.Student, pendingID string) *models.PendingItem {
	for i := range s.PendingItems {
		if s.PendingItems[i].ID == pendingID {
			return &s.PendingItems[i]
		}
	}
	return nil
}

// --- Catalog management ---

// CreateItem adds a catalog entry. The id is the slug of the Turkish title
// so catalog ids stay human-readable.
func (s *MarketService) CreateItem(item *models.MarketItem) error {
	if item.Title == "" || item.ClassCode == "" || item.Price <= 0 {
		return ErrMissingField
	}
	if item.Stock < 0 {
		item.Stock = 0
	}
	if item.ID == "" {
		item.ID = slug.Make(item.Title)
	}
	if item.Currency == "" {
		item.Currency = models.CurrencyGP
	}
	return s.DB.Create(item).Error
}

func (s *MarketService) UpdateStock(itemID string, stock int) error {
	if stock < 0 {
		stock = 0
	}
	res := s.DB.Model(&models.MarketItem{}).Where("id = ?", itemID).Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MarketService) DeleteItem(itemID string) error {
	res := s.DB.Delete(&models.MarketItem{}, "id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListItems returns the catalog for one class code.
func (s *MarketService) ListItems(classCode string) ([]models.MarketItem, error) {
	var items []models.MarketItem
	err := s.DB.Where("class_code = ?", classCode).Order("created_at ASC").Find(&items).Error
	return items, err
}

// ListItemsForCodes returns the catalog across an instructor's class codes.
func (s *MarketService) ListItemsForCodes(classCodes []string) ([]models.MarketItem, error) {
	var items []models.MarketItem
	err := s.DB.Where("class_code IN ?", classCodes).Order("created_at ASC").Find(&items).Error
	return items, err
}
