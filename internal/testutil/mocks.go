package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories      map[uuid.UUID]*domain.Category
	ExpenseCounts   map[uuid.UUID]int64
	CreateFn        func(category *domain.Category) (*domain.Category, error)
	GetAllFn        func() ([]*domain.Category, error)
	DeleteFn        func(id uuid.UUID) error
	CountExpensesFn func(id uuid.UUID) (int64, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories:    make(map[uuid.UUID]*domain.Category),
		ExpenseCounts: make(map[uuid.UUID]int64),
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	for _, c := range m.Categories {
		if strings.EqualFold(c.Name, category.Name) {
			return nil, domain.ErrCategoryNameExists
		}
	}
	category.ID = uuid.New()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by name
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update updates a category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category unless it has expenses
func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	if m.ExpenseCounts[id] > 0 {
		return domain.ErrCategoryInUse
	}
	delete(m.Categories, id)
	return nil
}

// CountExpenses returns the configured expense count for a category
func (m *MockCategoryRepository) CountExpenses(id uuid.UUID) (int64, error) {
	if m.CountExpensesFn != nil {
		return m.CountExpensesFn(id)
	}
	if _, ok := m.Categories[id]; !ok {
		return 0, domain.ErrCategoryNotFound
	}
	return m.ExpenseCounts[id], nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(name string) *domain.Category {
	category := &domain.Category{
		ID:    uuid.New(),
		Name:  name,
		Color: domain.DefaultCategoryColor,
		Icon:  domain.DefaultCategoryIcon,
	}
	m.Categories[category.ID] = category
	return category
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses    map[uuid.UUID]*domain.Expense
	Categories  *MockCategoryRepository
	LastFilters *domain.ExpenseFilters
	GetAllFn    func(filters *domain.ExpenseFilters) ([]*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository. When categories is
// non-nil, writes referencing unknown categories fail with ErrUnknownCategory.
func NewMockExpenseRepository(categories *MockCategoryRepository) *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses:   make(map[uuid.UUID]*domain.Expense),
		Categories: categories,
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if err := m.checkCategory(expense.CategoryID); err != nil {
		return nil, err
	}
	expense.ID = uuid.New()
	m.Expenses[expense.ID] = expense
	m.bumpCount(expense.CategoryID, 1)
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves expenses matching filters, newest first
func (m *MockExpenseRepository) GetAll(filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	m.LastFilters = filters
	if m.GetAllFn != nil {
		return m.GetAllFn(filters)
	}
	expenses := []*domain.Expense{}
	for _, e := range m.Expenses {
		if filters.Matches(e) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return bytes.Compare(expenses[i].ID[:], expenses[j].ID[:]) > 0
	})
	return expenses, nil
}

// Update updates an expense
func (m *MockExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	existing, ok := m.Expenses[expense.ID]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	if err := m.checkCategory(expense.CategoryID); err != nil {
		return nil, err
	}
	m.bumpCount(existing.CategoryID, -1)
	m.bumpCount(expense.CategoryID, 1)
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id uuid.UUID) error {
	existing, ok := m.Expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	m.bumpCount(existing.CategoryID, -1)
	delete(m.Expenses, id)
	return nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(categoryID uuid.UUID, amount string, date time.Time) *domain.Expense {
	expense := &domain.Expense{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Date:       date,
	}
	m.Expenses[expense.ID] = expense
	m.bumpCount(categoryID, 1)
	return expense
}

func (m *MockExpenseRepository) checkCategory(id uuid.UUID) error {
	if m.Categories == nil {
		return nil
	}
	if _, ok := m.Categories.Categories[id]; !ok {
		return domain.ErrUnknownCategory
	}
	return nil
}

func (m *MockExpenseRepository) bumpCount(categoryID uuid.UUID, delta int64) {
	if m.Categories != nil {
		m.Categories.ExpenseCounts[categoryID] += delta
	}
}

// MockRecurringBudgetRepository is a mock implementation of domain.RecurringBudgetRepository
type MockRecurringBudgetRepository struct {
	Budgets    map[uuid.UUID]*domain.RecurringBudget
	Categories *MockCategoryRepository
	GetAllFn   func() ([]*domain.RecurringBudget, error)
}

// NewMockRecurringBudgetRepository creates a new MockRecurringBudgetRepository
func NewMockRecurringBudgetRepository(categories *MockCategoryRepository) *MockRecurringBudgetRepository {
	return &MockRecurringBudgetRepository{
		Budgets:    make(map[uuid.UUID]*domain.RecurringBudget),
		Categories: categories,
	}
}

// Create creates a new recurring budget
func (m *MockRecurringBudgetRepository) Create(budget *domain.RecurringBudget) (*domain.RecurringBudget, error) {
	if err := m.checkWrite(budget); err != nil {
		return nil, err
	}
	budget.ID = uuid.New()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a recurring budget by ID
func (m *MockRecurringBudgetRepository) GetByID(id uuid.UUID) (*domain.RecurringBudget, error) {
	if budget, ok := m.Budgets[id]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetAll retrieves all recurring budgets
func (m *MockRecurringBudgetRepository) GetAll() ([]*domain.RecurringBudget, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	budgets := make([]*domain.RecurringBudget, 0, len(m.Budgets))
	for _, b := range m.Budgets {
		budgets = append(budgets, b)
	}
	sort.Slice(budgets, func(i, j int) bool {
		return bytes.Compare(budgets[i].ID[:], budgets[j].ID[:]) < 0
	})
	return budgets, nil
}

// Update updates a recurring budget
func (m *MockRecurringBudgetRepository) Update(budget *domain.RecurringBudget) (*domain.RecurringBudget, error) {
	if _, ok := m.Budgets[budget.ID]; !ok {
		return nil, domain.ErrBudgetNotFound
	}
	if err := m.checkWrite(budget); err != nil {
		return nil, err
	}
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// Delete removes a recurring budget
func (m *MockRecurringBudgetRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a recurring budget to the mock repository (helper for tests)
func (m *MockRecurringBudgetRepository) AddBudget(categoryID uuid.UUID, amount string) *domain.RecurringBudget {
	budget := &domain.RecurringBudget{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
	}
	m.Budgets[budget.ID] = budget
	return budget
}

func (m *MockRecurringBudgetRepository) checkWrite(budget *domain.RecurringBudget) error {
	if m.Categories != nil {
		if _, ok := m.Categories.Categories[budget.CategoryID]; !ok {
			return domain.ErrUnknownCategory
		}
	}
	for _, b := range m.Budgets {
		if b.CategoryID == budget.CategoryID && b.ID != budget.ID {
			return domain.ErrBudgetAlreadyExists
		}
	}
	return nil
}

// MockInsightGenerator is a mock implementation of domain.InsightGenerator
type MockInsightGenerator struct {
	Response string
	Err      error
	Prompts  []string
}

// Generate records the prompt and returns the configured response
func (m *MockInsightGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockReportStorage is a mock implementation of domain.ReportStorage
type MockReportStorage struct {
	Objects      map[string][]byte
	ContentTypes map[string]string
	BaseURL      string
	UploadErr    error
	PresignErr   error
}

// NewMockReportStorage creates a new MockReportStorage
func NewMockReportStorage() *MockReportStorage {
	return &MockReportStorage{
		Objects:      make(map[string][]byte),
		ContentTypes: make(map[string]string),
		BaseURL:      "https://reports.example.com",
	}
}

// Upload stores the object in memory
func (m *MockReportStorage) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if int64(len(body)) != size {
		return fmt.Errorf("size mismatch: declared %d, read %d", size, len(body))
	}
	m.Objects[objectPath] = body
	m.ContentTypes[objectPath] = contentType
	return nil
}

// GeneratePresignedURL returns a fake signed URL for a stored object
func (m *MockReportStorage) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	if _, ok := m.Objects[objectPath]; !ok {
		return "", fmt.Errorf("object %s not found", objectPath)
	}
	return fmt.Sprintf("%s/%s?expires=%d", m.BaseURL, objectPath, int(expiry.Seconds())), nil
}
