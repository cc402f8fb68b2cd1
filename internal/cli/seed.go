package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedFile is the data file loaded by spendctl. Budgets and expenses refer to
// categories by name.
type SeedFile struct {
	Categories []SeedCategory `json:"categories" yaml:"categories" toml:"categories"`
	Budgets    []SeedBudget   `json:"budgets" yaml:"budgets" toml:"budgets"`
	Expenses   []SeedExpense  `json:"expenses" yaml:"expenses" toml:"expenses"`
}

// SeedCategory is a category entry of a seed file
type SeedCategory struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Color string `json:"color" yaml:"color" toml:"color"`
	Icon  string `json:"icon" yaml:"icon" toml:"icon"`
}

// SeedBudget is a recurring budget entry of a seed file
type SeedBudget struct {
	Category string           `json:"category" yaml:"category" toml:"category"`
	Amount   *decimal.Decimal `json:"amount" yaml:"amount" toml:"amount"`
}

// SeedExpense is an expense entry of a seed file
type SeedExpense struct {
	Category    string           `json:"category" yaml:"category" toml:"category"`
	Amount      *decimal.Decimal `json:"amount" yaml:"amount" toml:"amount"`
	Description string           `json:"description" yaml:"description" toml:"description"`
	Date        string           `json:"date" yaml:"date" toml:"date"`
}

// LoadSeedFile reads a TOML, YAML or JSON seed file, chosen by extension
func LoadSeedFile(filePath string) (*SeedFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing data file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading data file: %w", err)
	}

	return ParseSeed(fileData, strings.ToLower(filepath.Ext(filePath)))
}

// ParseSeed decodes seed data in the format named by ext (".toml", ".yaml", ".yml" or ".json")
func ParseSeed(data []byte, ext string) (*SeedFile, error) {
	var seed SeedFile

	switch ext {
	case ".toml":
		// Decimal amounts and dates go through the JSON decoder
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
		converted, err := json.Marshal(tree.ToMap())
		if err != nil {
			return nil, fmt.Errorf("error converting TOML file: %w", err)
		}
		if err := json.Unmarshal(converted, &seed); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported data file format: %q", ext)
	}

	return &seed, nil
}

// Seeder writes seed entries through the services so every write is validated
type Seeder struct {
	categories *service.CategoryService
	expenses   *service.ExpenseService
	budgets    *service.RecurringBudgetService
}

// NewSeeder creates a new Seeder
func NewSeeder(categories *service.CategoryService, expenses *service.ExpenseService, budgets *service.RecurringBudgetService) *Seeder {
	return &Seeder{categories: categories, expenses: expenses, budgets: budgets}
}

// Apply creates the categories, then the budgets, then the expenses of seed. The
// first failing entry aborts the load.
func (s *Seeder) Apply(seed *SeedFile) error {
	ids := make(map[string]uuid.UUID, len(seed.Categories))
	for i, c := range seed.Categories {
		category, err := s.categories.CreateCategory(service.CategoryInput{Name: c.Name, Color: c.Color, Icon: c.Icon})
		if err != nil {
			return fmt.Errorf("categories[%d] %q: %w", i, c.Name, err)
		}
		ids[strings.ToLower(category.Name)] = category.ID
	}

	for i, b := range seed.Budgets {
		categoryID, err := lookupCategory(ids, b.Category)
		if err != nil {
			return fmt.Errorf("budgets[%d] %q: %w", i, b.Category, err)
		}
		if _, err := s.budgets.CreateBudget(categoryID, b.Amount); err != nil {
			return fmt.Errorf("budgets[%d] %q: %w", i, b.Category, err)
		}
	}

	for i, e := range seed.Expenses {
		categoryID, err := lookupCategory(ids, e.Category)
		if err != nil {
			return fmt.Errorf("expenses[%d] %q: %w", i, e.Category, err)
		}
		input := service.ExpenseInput{
			Amount:      e.Amount,
			CategoryID:  categoryID,
			Description: e.Description,
		}
		if e.Date != "" {
			date, err := util.ParseDate(e.Date)
			if err != nil {
				return fmt.Errorf("expenses[%d]: %w", i, err)
			}
			input.Date = &date
		}
		if _, err := s.expenses.CreateExpense(input); err != nil {
			return fmt.Errorf("expenses[%d] %q: %w", i, e.Category, err)
		}
	}

	return nil
}

// lookupCategory resolves a category name. A blank name resolves to uuid.Nil so the
// service reports the missing category.
func lookupCategory(ids map[string]uuid.UUID, name string) (uuid.UUID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return uuid.Nil, nil
	}
	id, ok := ids[key]
	if !ok {
		return uuid.Nil, domain.ErrUnknownCategory
	}
	return id, nil
}
