package domain

// Category pairs a display name with the chart color it is always drawn in.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategorySet is the fixed taxonomy of revenue and expense categories.
// The set is immutable at runtime; ordering is the display and stacking order.
type CategorySet struct {
	Revenue  []Category `json:"revenue"`
	Expenses []Category `json:"expenses"`
}

// FallbackCategory absorbs records whose stored category no longer matches
// the configured set. Aggregation never drops a record on the floor.
const FallbackCategory = "Divers"

// ProfitLineColor and the point colors are used by the net profit overlay.
const (
	ProfitLineColor          = "#059669"
	ProfitPointPositiveColor = "#10b981"
	ProfitPointNegativeColor = "#ef4444"
)

var defaultCategorySet = CategorySet{
	Revenue: []Category{
		{Name: "Manucure", Color: "#ec4899"},
		{Name: "Pédicure", Color: "#f97316"},
		{Name: "Spray-Tanning", Color: "#eab308"},
		{Name: "Blanchiment dentaire", Color: "#06b6d4"},
		{Name: "Soins", Color: "#10b981"},
		{Name: "Lissages", Color: "#8b5cf6"},
		{Name: "Divers", Color: "#6b7280"},
	},
	Expenses: []Category{
		{Name: "Fournisseur ongle", Color: "#ef4444"},
		{Name: "Fournisseur cheveux", Color: "#a855f7"},
		{Name: "Fournisseur spray tan", Color: "#f59e0b"},
		{Name: "Aménagement du salon", Color: "#9ca3af"},
		{Name: "Fournisseur blanchiment", Color: "#3b82f6"},
		{Name: "Divers", Color: "#6b7280"},
	},
}

// DefaultCategorySet returns a copy of the built-in category taxonomy.
func DefaultCategorySet() CategorySet {
	set := CategorySet{
		Revenue:  make([]Category, len(defaultCategorySet.Revenue)),
		Expenses: make([]Category, len(defaultCategorySet.Expenses)),
	}
	copy(set.Revenue, defaultCategorySet.Revenue)
	copy(set.Expenses, defaultCategorySet.Expenses)
	return set
}

// HasRevenue reports whether name is a configured revenue category.
func (s CategorySet) HasRevenue(name string) bool {
	for _, c := range s.Revenue {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasExpense reports whether name is a configured expense category.
func (s CategorySet) HasExpense(name string) bool {
	for _, c := range s.Expenses {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CanonicalRevenue maps a stored category to a member of the revenue set,
// falling back to FallbackCategory for anything unknown.
func (s CategorySet) CanonicalRevenue(name string) string {
	if s.HasRevenue(name) {
		return name
	}
	return FallbackCategory
}

// CanonicalExpense maps a stored category to a member of the expense set.
func (s CategorySet) CanonicalExpense(name string) string {
	if s.HasExpense(name) {
		return name
	}
	return FallbackCategory
}
