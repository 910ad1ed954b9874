package entities

// Item is one inventory entry. JSON keys are the persisted storage format.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate Date    `json:"expiryDate"`
	Notes      string  `json:"notes"`
	AddedDate  Date    `json:"addedDate"`
}

// ItemPatch carries the edit form fields. Nil fields keep the stored value.
type ItemPatch struct {
	Name       *string
	Category   *string
	Quantity   *float64
	Unit       *string
	ExpiryDate *Date
	Notes      *string
}

// Apply shallow-merges the patch over a copy of item.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.ExpiryDate != nil {
		item.ExpiryDate = *p.ExpiryDate
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}
