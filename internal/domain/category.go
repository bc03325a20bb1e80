package domain

// Category is a fixed classification label
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRegistry holds the allowed categories per transaction type.
// It is built once at start-up and only read afterwards.
type CategoryRegistry struct {
	byType map[TransactionType][]Category
	index  map[TransactionType]map[string]Category
}

// NewCategoryRegistry builds a registry from the category lists of each type
func NewCategoryRegistry(income, expense, investment []Category) *CategoryRegistry {
	r := &CategoryRegistry{
		byType: make(map[TransactionType][]Category, 3),
		index:  make(map[TransactionType]map[string]Category, 3),
	}
	r.add(TransactionTypeIncome, income)
	r.add(TransactionTypeExpense, expense)
	r.add(TransactionTypeInvestment, investment)
	return r
}

func (r *CategoryRegistry) add(t TransactionType, categories []Category) {
	list := make([]Category, len(categories))
	copy(list, categories)
	r.byType[t] = list

	idx := make(map[string]Category, len(list))
	for _, c := range list {
		idx[c.ID] = c
	}
	r.index[t] = idx
}

// DefaultCategoryRegistry returns the registry with the built-in categories
func DefaultCategoryRegistry() *CategoryRegistry {
	return NewCategoryRegistry(
		[]Category{
			{ID: "salary", Name: "Salary"},
			{ID: "freelance", Name: "Freelance"},
			{ID: "business", Name: "Business Income"},
			{ID: "investments", Name: "Investment Returns"},
			{ID: "rental", Name: "Rental Income"},
			{ID: "other_income", Name: "Other Income"},
		},
		[]Category{
			{ID: "utilities", Name: "Utilities"},
			{ID: "rent", Name: "Rent/Housing"},
			{ID: "groceries", Name: "Groceries"},
			{ID: "transportation", Name: "Transportation"},
			{ID: "healthcare", Name: "Healthcare"},
			{ID: "entertainment", Name: "Entertainment"},
			{ID: "dining", Name: "Dining Out"},
			{ID: "shopping", Name: "Shopping"},
			{ID: "education", Name: "Education"},
			{ID: "insurance", Name: "Insurance"},
			{ID: "credit_card", Name: "Credit Card Bill"},
			{ID: "other_expense", Name: "Other Expense"},
		},
		[]Category{
			{ID: "stocks", Name: "Stocks"},
			{ID: "mutual_funds", Name: "Mutual Funds"},
			{ID: "fixed_deposits", Name: "Fixed Deposits"},
			{ID: "real_estate", Name: "Real Estate"},
			{ID: "crypto", Name: "Cryptocurrency"},
			{ID: "gold", Name: "Gold"},
			{ID: "bonds", Name: "Bonds"},
			{ID: "other_investment", Name: "Other Investment"},
		},
	)
}

// IsValidType reports whether t is a known transaction type
func (r *CategoryRegistry) IsValidType(t TransactionType) bool {
	_, ok := r.index[t]
	return ok
}

// IsValid reports whether categoryID belongs to the list of type t
func (r *CategoryRegistry) IsValid(t TransactionType, categoryID string) bool {
	_, ok := r.Lookup(t, categoryID)
	return ok
}

// Lookup returns the category with the given id for type t
func (r *CategoryRegistry) Lookup(t TransactionType, categoryID string) (Category, bool) {
	c, ok := r.index[t][categoryID]
	return c, ok
}

// Categories returns a copy of the categories of type t
func (r *CategoryRegistry) Categories(t TransactionType) []Category {
	list := r.byType[t]
	out := make([]Category, len(list))
	copy(out, list)
	return out
}
