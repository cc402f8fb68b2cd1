package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/dafibh/spendboard/internal/testutil"
	"github.com/google/uuid"
)

func newCategoryHandler() (*CategoryHandler, *testutil.MockCategoryRepository) {
	repo := testutil.NewMockCategoryRepository()
	return NewCategoryHandler(service.NewCategoryService(repo)), repo
}

func TestCreateCategory_Success(t *testing.T) {
	handler, _ := newCategoryHandler()
	c, rec := newTestContext(http.MethodPost, "/api/v1/categories", `{"name":"  Food  ","color":"#ff0000"}`)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var response CategoryResponse
	decodeResponse(t, rec, &response)
	if response.Name != "Food" {
		t.Errorf("Expected trimmed name 'Food', got %q", response.Name)
	}
	if response.Color != "#ff0000" {
		t.Errorf("Expected color '#ff0000', got %q", response.Color)
	}
	if response.Icon != domain.DefaultCategoryIcon {
		t.Errorf("Expected default icon, got %q", response.Icon)
	}
	if _, err := uuid.Parse(response.ID); err != nil {
		t.Errorf("Expected UUID id, got %q", response.ID)
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	handler, _ := newCategoryHandler()
	c, rec := newTestContext(http.MethodPost, "/api/v1/categories", `{"name":"   "}`)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusBadRequest)

	problem := decodeProblem(t, rec)
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation error type, got %s", problem.Type)
	}
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "name" {
		t.Errorf("Expected a single 'name' field error, got %+v", problem.Errors)
	}
}

func TestCreateCategory_InvalidBody(t *testing.T) {
	handler, _ := newCategoryHandler()
	c, rec := newTestContext(http.MethodPost, "/api/v1/categories", `{"name":`)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	handler, repo := newCategoryHandler()
	repo.AddCategory("Food")
	c, rec := newTestContext(http.MethodPost, "/api/v1/categories", `{"name":"FOOD"}`)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusConflict)

	problem := decodeProblem(t, rec)
	if problem.Detail != "category with this name already exists" {
		t.Errorf("Unexpected detail %q", problem.Detail)
	}
}

func TestCreateCategory_RepositoryFailure(t *testing.T) {
	handler, repo := newCategoryHandler()
	repo.CreateFn = func(*domain.Category) (*domain.Category, error) {
		return nil, errors.New("connection reset")
	}
	c, rec := newTestContext(http.MethodPost, "/api/v1/categories", `{"name":"Food"}`)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusInternalServerError)

	problem := decodeProblem(t, rec)
	if problem.Detail == "connection reset" {
		t.Error("Expected internal details to be hidden")
	}
}

func TestGetCategories_SortedByName(t *testing.T) {
	handler, repo := newCategoryHandler()
	repo.AddCategory("Transport")
	repo.AddCategory("Bills")
	c, rec := newTestContext(http.MethodGet, "/api/v1/categories", "")

	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response []CategoryResponse
	decodeResponse(t, rec, &response)
	if len(response) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(response))
	}
	if response[0].Name != "Bills" || response[1].Name != "Transport" {
		t.Errorf("Expected categories ordered by name, got %s, %s", response[0].Name, response[1].Name)
	}
}

func TestGetCategory_InvalidID(t *testing.T) {
	handler, _ := newCategoryHandler()
	c, rec := newTestContext(http.MethodGet, "/api/v1/categories/abc", "")
	withParam(c, "id", "abc")

	if err := handler.GetCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestGetCategory_NotFound(t *testing.T) {
	handler, _ := newCategoryHandler()
	id := uuid.New().String()
	c, rec := newTestContext(http.MethodGet, "/api/v1/categories/"+id, "")
	withParam(c, "id", id)

	if err := handler.GetCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusNotFound)
}

func TestUpdateCategory_Success(t *testing.T) {
	handler, repo := newCategoryHandler()
	category := repo.AddCategory("Food")
	c, rec := newTestContext(http.MethodPut, "/api/v1/categories/"+category.ID.String(), `{"name":"Groceries","icon":"🛒"}`)
	withParam(c, "id", category.ID.String())

	if err := handler.UpdateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response CategoryResponse
	decodeResponse(t, rec, &response)
	if response.Name != "Groceries" || response.Icon != "🛒" {
		t.Errorf("Unexpected category %+v", response)
	}
	if response.ID != category.ID.String() {
		t.Errorf("Expected id to be preserved, got %s", response.ID)
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	handler, repo := newCategoryHandler()
	category := repo.AddCategory("Food")
	repo.ExpenseCounts[category.ID] = 2
	c, rec := newTestContext(http.MethodDelete, "/api/v1/categories/"+category.ID.String(), "")
	withParam(c, "id", category.ID.String())

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusConflict)
	if _, ok := repo.Categories[category.ID]; !ok {
		t.Error("Expected category to be kept")
	}
}

func TestDeleteCategory_Success(t *testing.T) {
	handler, repo := newCategoryHandler()
	category := repo.AddCategory("Food")
	c, rec := newTestContext(http.MethodDelete, "/api/v1/categories/"+category.ID.String(), "")
	withParam(c, "id", category.ID.String())

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusNoContent)
	if _, ok := repo.Categories[category.ID]; ok {
		t.Error("Expected category to be removed")
	}
}

func TestCanDeleteCategory(t *testing.T) {
	handler, repo := newCategoryHandler()
	category := repo.AddCategory("Food")
	repo.ExpenseCounts[category.ID] = 3
	c, rec := newTestContext(http.MethodGet, "/api/v1/categories/"+category.ID.String()+"/can-delete", "")
	withParam(c, "id", category.ID.String())

	if err := handler.CanDeleteCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var response CanDeleteResponse
	decodeResponse(t, rec, &response)
	if response.CanDelete {
		t.Error("Expected canDelete to be false")
	}
	if response.ExpenseCount != 3 {
		t.Errorf("Expected expense count 3, got %d", response.ExpenseCount)
	}
}
