package service

import (
	"strings"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/google/uuid"
)

// CategoryInput carries the editable fields of a category
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(input CategoryInput) (*domain.Category, error) {
	category, err := normalizeCategory(input)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(category)
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a category by ID
func (s *CategoryService) GetCategoryByID(id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// UpdateCategory replaces a category's name, color and icon
func (s *CategoryService) UpdateCategory(id uuid.UUID, input CategoryInput) (*domain.Category, error) {
	category, err := normalizeCategory(input)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return s.categoryRepo.Update(category)
}

// DeleteCategory deletes a category and its recurring budget. Categories that still
// have expenses are rejected with ErrCategoryInUse.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	return s.categoryRepo.Delete(id)
}

// CanDeleteResponse contains information about whether a category can be safely deleted
type CanDeleteResponse struct {
	CanDelete    bool  `json:"canDelete"`
	ExpenseCount int64 `json:"expenseCount"`
}

// CanDelete checks if a category can be deleted (no expenses assigned)
func (s *CategoryService) CanDelete(id uuid.UUID) (*CanDeleteResponse, error) {
	count, err := s.categoryRepo.CountExpenses(id)
	if err != nil {
		return nil, err
	}
	return &CanDeleteResponse{
		CanDelete:    count == 0,
		ExpenseCount: count,
	}, nil
}

func normalizeCategory(input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len([]rune(name)) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = domain.DefaultCategoryColor
	}
	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = domain.DefaultCategoryIcon
	}

	return &domain.Category{Name: name, Color: color, Icon: icon}, nil
}
