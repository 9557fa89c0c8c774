package rentcatalog

// CreateProductRequest carries all fields required to create a product.
// Price fields are pointers so that an absent field is distinguishable
// from a legitimate zero value; validation rejects absence, not zero.
type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	DailyPrice   *float64 `json:"dailyPrice" validate:"required,gte=0"`
	WeekendPrice *float64 `json:"weekendPrice" validate:"required,gte=0"`
	WeeklyPrice  *float64 `json:"weeklyPrice" validate:"required,gte=0"`
	Deposit      *float64 `json:"deposit" validate:"required,gte=0"`
	Body         string   `json:"mdxContent"`
}

// UpdateProductRequest carries a full replacement for an existing product.
// Partial updates are not supported: every structured field and the body
// must be present. The slug is never altered by an update, even when Name
// changes.
type UpdateProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	DailyPrice   *float64 `json:"dailyPrice" validate:"required,gte=0"`
	WeekendPrice *float64 `json:"weekendPrice" validate:"required,gte=0"`
	WeeklyPrice  *float64 `json:"weeklyPrice" validate:"required,gte=0"`
	Deposit      *float64 `json:"deposit" validate:"required,gte=0"`
	Body         *string  `json:"mdxContent" validate:"required"`
}

func (r CreateProductRequest) frontmatter() Frontmatter {
	return Frontmatter{
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		DailyPrice:   *r.DailyPrice,
		WeekendPrice: *r.WeekendPrice,
		WeeklyPrice:  *r.WeeklyPrice,
		Deposit:      *r.Deposit,
	}
}

func (r UpdateProductRequest) frontmatter() Frontmatter {
	return Frontmatter{
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		DailyPrice:   *r.DailyPrice,
		WeekendPrice: *r.WeekendPrice,
		WeeklyPrice:  *r.WeeklyPrice,
		Deposit:      *r.Deposit,
	}
}
