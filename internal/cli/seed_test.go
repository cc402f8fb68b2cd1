package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/repository/memory"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSeed = `
categories:
  - name: Food
    color: "#ff0000"
  - name: Rent
budgets:
  - category: food
    amount: 400
expenses:
  - category: Food
    amount: 12.5
    description: Lunch
    date: 2024-03-05
  - category: Rent
    amount: "900"
    date: 2024-03-01
`

const tomlSeed = `
[[categories]]
name = "Food"

[[budgets]]
category = "Food"
amount = 400

[[expenses]]
category = "Food"
amount = 12.5
description = "Lunch"
date = "2024-03-05"
`

const jsonSeed = `{
  "categories": [{"name": "Food"}],
  "budgets": [{"category": "Food", "amount": "400"}],
  "expenses": [{"category": "Food", "amount": 12.5, "description": "Lunch", "date": "2024-03-05"}]
}`

func newTestSeeder(store *memory.Store) *Seeder {
	return NewSeeder(
		service.NewCategoryService(store.Categories()),
		service.NewExpenseService(store.Expenses()),
		service.NewRecurringBudgetService(store.RecurringBudgets()),
	)
}

func TestParseSeed_Formats(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"yaml", yamlSeed, ".yaml"},
		{"yml", yamlSeed, ".yml"},
		{"toml", tomlSeed, ".toml"},
		{"json", jsonSeed, ".json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := ParseSeed([]byte(tt.data), tt.ext)
			require.NoError(t, err)

			require.NotEmpty(t, seed.Categories)
			assert.Equal(t, "Food", seed.Categories[0].Name)
			require.Len(t, seed.Budgets, 1)
			require.NotNil(t, seed.Budgets[0].Amount)
			assert.Equal(t, "400.00", seed.Budgets[0].Amount.StringFixed(2))
			require.NotEmpty(t, seed.Expenses)
			require.NotNil(t, seed.Expenses[0].Amount)
			assert.Equal(t, "12.50", seed.Expenses[0].Amount.StringFixed(2))
			assert.Equal(t, "2024-03-05", seed.Expenses[0].Date)
		})
	}
}

func TestParseSeed_UnsupportedFormat(t *testing.T) {
	_, err := ParseSeed([]byte("a,b"), ".csv")
	assert.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSeed), 0o600))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, seed.Categories, 2)
	assert.Len(t, seed.Expenses, 2)

	_, err = LoadSeedFile(filepath.Dir(path))
	assert.Error(t, err)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeeder_Apply(t *testing.T) {
	seed, err := ParseSeed([]byte(yamlSeed), ".yaml")
	require.NoError(t, err)

	store := memory.NewStore()
	require.NoError(t, newTestSeeder(store).Apply(seed))

	categories, err := store.Categories().GetAll()
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	budgets, err := store.RecurringBudgets().GetAll()
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "400.00", budgets[0].Amount.StringFixed(2))

	expenses, err := store.Expenses().GetAll(&domain.ExpenseFilters{})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
}

func TestSeeder_UnknownCategory(t *testing.T) {
	seed := &SeedFile{
		Categories: []SeedCategory{{Name: "Food"}},
		Expenses:   []SeedExpense{{Category: "Travel", Amount: nil, Date: "2024-03-05"}},
	}

	err := newTestSeeder(memory.NewStore()).Apply(seed)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.Contains(t, err.Error(), "expenses[0]")
}

func TestSeeder_ValidationAppliesToEntries(t *testing.T) {
	seed, err := ParseSeed([]byte(`
categories:
  - name: Food
expenses:
  - category: Food
    amount: -3
    date: 2024-03-05
`), ".yaml")
	require.NoError(t, err)

	err = newTestSeeder(memory.NewStore()).Apply(seed)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSeeder_DuplicateCategory(t *testing.T) {
	seed := &SeedFile{Categories: []SeedCategory{{Name: "Food"}, {Name: "food"}}}

	err := newTestSeeder(memory.NewStore()).Apply(seed)
	assert.ErrorIs(t, err, domain.ErrCategoryNameExists)
	assert.Contains(t, err.Error(), "categories[1]")
}
