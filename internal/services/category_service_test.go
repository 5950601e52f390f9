package services

import (
	"testing"

	"brewbooks/internal/models"
	"brewbooks/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Beans", Type: models.CategoryTypeExpense})
		testutil.AssertNoError(t, err)
		if category.ID == "" || category.IsSystem {
			t.Errorf("unexpected category %+v", category)
		}
	})

	t.Run("duplicate_triple_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Beans", models.CategoryTypeExpense)

		_, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Beans", Type: models.CategoryTypeExpense})
		testutil.AssertFieldError(t, err, "name")
	})

	t.Run("same_name_other_type_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Beans", models.CategoryTypeExpense)

		_, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Beans", Type: models.CategoryTypeIncome})
		testutil.AssertNoError(t, err)
	})

	t.Run("same_name_other_owner_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, other.ID, "Beans", models.CategoryTypeExpense)

		_, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Beans", Type: models.CategoryTypeExpense})
		testutil.AssertNoError(t, err)
	})

	t.Run("foreign_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Milk", Type: models.CategoryTypeExpense, ParentID: &foreign.ID})
		testutil.AssertFieldError(t, err, "parent_id")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Stuff", Type: "transfer"})
		testutil.AssertFieldError(t, err, "type")
	})
}

func TestGetCategoryByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	parent, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Supplies", Type: models.CategoryTypeExpense})
	testutil.AssertNoError(t, err)
	child, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Cups", Type: models.CategoryTypeExpense, ParentID: &parent.ID})
	testutil.AssertNoError(t, err)

	t.Run("child_has_parent", func(t *testing.T) {
		got, err := svc.GetCategoryByID(user.ID, child.ID)
		testutil.AssertNoError(t, err)
		if got.Parent == nil || got.Parent.ID != parent.ID {
			t.Errorf("expected parent %s, got %+v", parent.ID, got.Parent)
		}
	})

	t.Run("parent_has_children", func(t *testing.T) {
		got, err := svc.GetCategoryByID(user.ID, parent.ID)
		testutil.AssertNoError(t, err)
		if len(got.Children) != 1 || got.Children[0].ID != child.ID {
			t.Errorf("expected one child, got %+v", got.Children)
		}
	})

	t.Run("foreign_not_found", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		_, err := svc.GetCategoryByID(other.ID, parent.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	all, err := svc.ListCategories(user.ID, nil)
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 categories, got %d", len(all))
	}

	expense := models.CategoryTypeExpense
	filtered, err := svc.ListCategories(user.ID, &expense)
	testutil.AssertNoError(t, err)
	if len(filtered) != 2 {
		t.Errorf("expected 2 expense categories, got %d", len(filtered))
	}
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		name := "Rent"
		updated, err := svc.UpdateCategory(user.ID, category.ID, CategoryUpdateFields{Name: &name})
		testutil.AssertNoError(t, err)
		if updated.Name != "Rent" || updated.Type != models.CategoryTypeExpense {
			t.Errorf("unexpected category %+v", updated)
		}
	})

	t.Run("self_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.UpdateCategory(user.ID, category.ID, CategoryUpdateFields{ParentID: &category.ID})
		testutil.AssertFieldError(t, err, "parent_id")
	})

	t.Run("cycle_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		root, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Root", Type: models.CategoryTypeExpense})
		testutil.AssertNoError(t, err)
		leaf, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Leaf", Type: models.CategoryTypeExpense, ParentID: &root.ID})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(user.ID, root.ID, CategoryUpdateFields{ParentID: &leaf.ID})
		testutil.AssertFieldError(t, err, "parent_id")
	})

	t.Run("clear_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		root, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Root", Type: models.CategoryTypeExpense})
		testutil.AssertNoError(t, err)
		leaf, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Leaf", Type: models.CategoryTypeExpense, ParentID: &root.ID})
		testutil.AssertNoError(t, err)

		empty := ""
		updated, err := svc.UpdateCategory(user.ID, leaf.ID, CategoryUpdateFields{ParentID: &empty})
		testutil.AssertNoError(t, err)
		if updated.ParentID != nil {
			t.Errorf("expected parent cleared, got %v", *updated.ParentID)
		}
	})

	t.Run("type_change_blocked_when_used", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, account, category, 100)

		income := models.CategoryTypeIncome
		_, err := svc.UpdateCategory(user.ID, category.ID, CategoryUpdateFields{Type: &income})
		testutil.AssertFieldError(t, err, "type")
	})

	t.Run("duplicate_rename_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Milk", models.CategoryTypeExpense)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Syrup", models.CategoryTypeExpense)

		name := "Milk"
		_, err := svc.UpdateCategory(user.ID, category.ID, CategoryUpdateFields{Name: &name})
		testutil.AssertFieldError(t, err, "name")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("blocked_with_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		testutil.CreateTestTransaction(t, db, user.ID, account, category, 100)

		testutil.AssertAppError(t, svc.DeleteCategory(user.ID, category.ID), "CATEGORY_HAS_TRANSACTIONS")
	})

	t.Run("blocked_with_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		root, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Root", Type: models.CategoryTypeExpense})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user.ID, CategoryInput{Name: "Leaf", Type: models.CategoryTypeExpense, ParentID: &root.ID})
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.DeleteCategory(user.ID, root.ID), "CATEGORY_HAS_CHILDREN")
	})

	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))
		_, err := svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
