package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dafibh/spendboard/internal/service"
	"github.com/dafibh/spendboard/internal/testutil"
	"github.com/google/uuid"
)

func newBudgetHandler() (*BudgetHandler, *testutil.MockCategoryRepository, *testutil.MockRecurringBudgetRepository) {
	categories := testutil.NewMockCategoryRepository()
	budgets := testutil.NewMockRecurringBudgetRepository(categories)
	return NewBudgetHandler(service.NewRecurringBudgetService(budgets)), categories, budgets
}

func TestCreateBudget_Success(t *testing.T) {
	handler, categories, _ := newBudgetHandler()
	food := categories.AddCategory("Food")
	c, rec := newTestContext(http.MethodPost, "/api/v1/budgets", fmt.Sprintf(`{"categoryId":"%s","amount":"400"}`, food.ID))

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var response BudgetResponse
	decodeResponse(t, rec, &response)
	if response.Amount != "400.00" {
		t.Errorf("Expected amount '400.00', got %s", response.Amount)
	}
	if response.CategoryID != food.ID.String() {
		t.Errorf("Expected category %s, got %s", food.ID, response.CategoryID)
	}
}

func TestCreateBudget_SecondBudgetForCategory(t *testing.T) {
	handler, categories, budgets := newBudgetHandler()
	food := categories.AddCategory("Food")
	budgets.AddBudget(food.ID, "100")
	c, rec := newTestContext(http.MethodPost, "/api/v1/budgets", fmt.Sprintf(`{"categoryId":"%s","amount":"400"}`, food.ID))

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusConflict)
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	handler, _, _ := newBudgetHandler()
	c, rec := newTestContext(http.MethodPost, "/api/v1/budgets", fmt.Sprintf(`{"categoryId":"%s","amount":"400"}`, uuid.New()))

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestCreateBudget_ValidationErrors(t *testing.T) {
	handler, categories, _ := newBudgetHandler()
	food := categories.AddCategory("Food")
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing amount", fmt.Sprintf(`{"categoryId":"%s"}`, food.ID), "amount"},
		{"negative amount", fmt.Sprintf(`{"categoryId":"%s","amount":"-5"}`, food.ID), "amount"},
		{"missing category", `{"amount":"5"}`, "categoryId"},
		{"malformed category", `{"categoryId":"x","amount":"5"}`, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/v1/budgets", tt.body)

			if err := handler.CreateBudget(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			expectStatus(t, rec, http.StatusBadRequest)

			problem := decodeProblem(t, rec)
			if len(problem.Errors) != 1 || problem.Errors[0].Field != tt.field {
				t.Errorf("Expected a single %q field error, got %+v", tt.field, problem.Errors)
			}
		})
	}
}

func TestUpdateBudget_Success(t *testing.T) {
	handler, categories, budgets := newBudgetHandler()
	food := categories.AddCategory("Food")
	budget := budgets.AddBudget(food.ID, "100")
	c, rec := newTestContext(http.MethodPut, "/api/v1/budgets/"+budget.ID.String(), fmt.Sprintf(`{"categoryId":"%s","amount":"250.5"}`, food.ID))
	withParam(c, "id", budget.ID.String())

	if err := handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response BudgetResponse
	decodeResponse(t, rec, &response)
	if response.Amount != "250.50" {
		t.Errorf("Expected amount '250.50', got %s", response.Amount)
	}
}

func TestDeleteBudget_NotFound(t *testing.T) {
	handler, _, _ := newBudgetHandler()
	id := uuid.New().String()
	c, rec := newTestContext(http.MethodDelete, "/api/v1/budgets/"+id, "")
	withParam(c, "id", id)

	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusNotFound)
}

func TestGetBudgets(t *testing.T) {
	handler, categories, budgets := newBudgetHandler()
	budgets.AddBudget(categories.AddCategory("Food").ID, "100")
	budgets.AddBudget(categories.AddCategory("Rent").ID, "900")
	c, rec := newTestContext(http.MethodGet, "/api/v1/budgets", "")

	if err := handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response []BudgetResponse
	decodeResponse(t, rec, &response)
	if len(response) != 2 {
		t.Errorf("Expected 2 budgets, got %d", len(response))
	}
}
