package testutil_test

import (
	"testing"

	"github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "cards", "categories", "income_types", "transactions"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	card := testutil.CreateTestCard(t, db, user.ID)
	if card.LastDigits != "1234" {
		t.Errorf("expected last digits 1234, got %s", card.LastDigits)
	}

	category := testutil.CreateTestCategory(t, db, user.ID)
	if category.Color != "#ff8800" {
		t.Errorf("expected color #ff8800, got %s", category.Color)
	}

	incomeType := testutil.CreateTestIncomeType(t, db, user.ID)
	if incomeType.Name == "" {
		t.Error("income type should have a name")
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 1000)
	if tx.Amount != 1000 {
		t.Errorf("expected amount 1000, got %f", tx.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCardNotFound, "custom message")
	testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
