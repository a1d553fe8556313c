package domain

// Fields tracked for persistence.
const (
	FieldItems  = "items"
	FieldCoupon = "coupon"
)

// ChangeTracker records which parts of a cart were modified so the
// repository writes only those.
type ChangeTracker struct {
	dirtyFields map[string]bool
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		dirtyFields: make(map[string]bool),
	}
}

func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirtyFields[field] = true
}

func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirtyFields[field]
}

func (ct *ChangeTracker) Clear() {
	ct.dirtyFields = make(map[string]bool)
}

func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirtyFields) > 0
}
