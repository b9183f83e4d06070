package testutil

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users  map[int32]*domain.User
	NextID int32
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[int32]*domain.User), NextID: 1}
}

func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Create(user *domain.User) (int32, error) {
	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	return user.ID, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int32]*domain.Budget
	NextID  int32

	// Summaries holds the aggregate view GetWithSummary returns; absent
	// entries fall back to zero aggregates over the stored budget.
	Summaries map[int32]*domain.BudgetWithSummary
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets:   make(map[int32]*domain.Budget),
		Summaries: make(map[int32]*domain.BudgetWithSummary),
		NextID:    1,
	}
}

func (m *MockBudgetRepository) List(filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	out := make([]*domain.Budget, 0, len(m.Budgets))
	for _, b := range m.Budgets {
		if filters != nil && filters.IsActive != nil && b.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockBudgetRepository) GetByID(id int32) (*domain.Budget, error) {
	if b, ok := m.Budgets[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) GetWithSummary(id int32) (*domain.BudgetWithSummary, error) {
	if s, ok := m.Summaries[id]; ok {
		return s, nil
	}
	b, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	return &domain.BudgetWithSummary{
		Budget:       *b,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      decimal.Zero,
	}, nil
}

func (m *MockBudgetRepository) Create(budget *domain.Budget) (int32, error) {
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget.ID, nil
}

func (m *MockBudgetRepository) Update(id int32, budget *domain.Budget) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	budget.ID = id
	budget.UpdatedAt = time.Now()
	m.Budgets[id] = budget
	return nil
}

func (m *MockBudgetRepository) Delete(id int32) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32
	Summaries  map[int32]*domain.CategoryWithSummary
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		Summaries:  make(map[int32]*domain.CategoryWithSummary),
		NextID:     1,
	}
}

func (m *MockCategoryRepository) List(filters *domain.CategoryFilters) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		if filters != nil {
			if filters.Type != nil && c.Type != *filters.Type {
				continue
			}
			if filters.IsActive != nil && c.IsActive != *filters.IsActive {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) GetWithSummary(id int32) (*domain.CategoryWithSummary, error) {
	if s, ok := m.Summaries[id]; ok {
		return s, nil
	}
	c, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &domain.CategoryWithSummary{
		Category:     *c,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}, nil
}

func (m *MockCategoryRepository) Create(category *domain.Category) (int32, error) {
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category.ID, nil
}

func (m *MockCategoryRepository) Update(id int32, category *domain.Category) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	category.ID = id
	category.UpdatedAt = time.Now()
	m.Categories[id] = category
	return nil
}

func (m *MockCategoryRepository) Delete(id int32) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. List applies the same filter and
// offset/limit semantics as the real repository so pagination behavior
// can be tested against it.
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[int32]*domain.Transaction), NextID: 1}
}

func (m *MockTransactionRepository) matches(t *domain.Transaction, filters *domain.TransactionFilters) bool {
	if filters == nil {
		return true
	}
	if filters.BudgetID != nil && t.BudgetID != *filters.BudgetID {
		return false
	}
	if filters.CategoryID != nil && t.CategoryID != *filters.CategoryID {
		return false
	}
	if filters.Type != nil && t.Type != *filters.Type {
		return false
	}
	if filters.PaymentMethod != nil && (t.PaymentMethod == nil || *t.PaymentMethod != *filters.PaymentMethod) {
		return false
	}
	if filters.DateFrom != nil && t.Date.Before(*filters.DateFrom) {
		return false
	}
	if filters.DateTo != nil && t.Date.After(*filters.DateTo) {
		return false
	}
	return true
}

func (m *MockTransactionRepository) List(filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	all := make([]*domain.Transaction, 0, len(m.Transactions))
	for _, t := range m.Transactions {
		if m.matches(t, filters) {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	var page, limit int32
	if filters != nil {
		page, limit = filters.Page, filters.Limit
	}
	pagination := domain.NewPagination(page, limit, int64(len(all)))
	offset := pagination.Offset()
	if offset > int32(len(all)) {
		offset = int32(len(all))
	}
	end := offset + pagination.Limit
	if end > int32(len(all)) {
		end = int32(len(all))
	}
	return &domain.PaginatedTransactions{
		Transactions: all[offset:end],
		Pagination:   pagination,
	}, nil
}

func (m *MockTransactionRepository) GetByID(id int32) (*domain.Transaction, error) {
	if t, ok := m.Transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (int32, error) {
	transaction.ID = m.NextID
	m.NextID++
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt
	m.Transactions[transaction.ID] = transaction
	return transaction.ID, nil
}

func (m *MockTransactionRepository) Update(id int32, transaction *domain.Transaction) error {
	existing, ok := m.Transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	transaction.ID = id
	transaction.CreatedBy = existing.CreatedBy
	transaction.UpdatedAt = time.Now()
	m.Transactions[id] = transaction
	return nil
}

func (m *MockTransactionRepository) Delete(id int32) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

func (m *MockTransactionRepository) RequestDelete(id int32, userID int32, note *string) error {
	t, ok := m.Transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	now := time.Now()
	t.DeleteRequestedBy = &userID
	t.DeleteRequestedAt = &now
	t.DeleteRequestNote = note
	return nil
}

func (m *MockTransactionRepository) Latest(limit int32) ([]*domain.Transaction, error) {
	all := make([]*domain.Transaction, 0, len(m.Transactions))
	for _, t := range m.Transactions {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

// MockSummaryRepository is a mock implementation of domain.SummaryRepository
type MockSummaryRepository struct {
	Totals       *domain.OverallTotals
	BudgetRows   []*domain.BudgetSummaryRow
	CategoryRows []*domain.CategorySummaryRow
	DateRows     []*domain.DateSummaryRow
}

// NewMockSummaryRepository creates a new MockSummaryRepository with zero totals
func NewMockSummaryRepository() *MockSummaryRepository {
	return &MockSummaryRepository{
		Totals: &domain.OverallTotals{
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
			Balance:      decimal.Zero,
		},
	}
}

func (m *MockSummaryRepository) Overall() (*domain.OverallTotals, error) {
	return m.Totals, nil
}

func (m *MockSummaryRepository) ByBudget() ([]*domain.BudgetSummaryRow, error) {
	return m.BudgetRows, nil
}

func (m *MockSummaryRepository) ByCategory() ([]*domain.CategorySummaryRow, error) {
	return m.CategoryRows, nil
}

func (m *MockSummaryRepository) ByDate(from, to time.Time) ([]*domain.DateSummaryRow, error) {
	out := make([]*domain.DateSummaryRow, 0, len(m.DateRows))
	for _, row := range m.DateRows {
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
