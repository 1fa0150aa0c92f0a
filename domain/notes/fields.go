package notes

// FieldName names a note attribute a partial update may touch.
type FieldName string

const (
	FieldTitle   FieldName = "title"
	FieldContent FieldName = "content"
)

// FieldUpdate is one tagged entry in a field mask. Presence of an entry means
// "write this value"; absence means "leave the stored attribute untouched".
// An empty Value is a legal value here, the distinction between absent and
// empty lives entirely in whether the entry exists.
type FieldUpdate struct {
	Name  FieldName
	Value string
}

// FieldMask is the explicit set of fields a partial update writes. UpdatedAt
// is not part of the mask: the store rewrites it on every update call.
type FieldMask []FieldUpdate

// TitleField builds a title entry
func TitleField(v string) FieldUpdate {
	return FieldUpdate{Name: FieldTitle, Value: v}
}

// ContentField builds a content entry
func ContentField(v string) FieldUpdate {
	return FieldUpdate{Name: FieldContent, Value: v}
}

// Has reports whether the mask contains an entry for the given field
func (m FieldMask) Has(name FieldName) bool {
	for _, f := range m {
		if f.Name == name {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the mask touches no fields
func (m FieldMask) IsEmpty() bool {
	return len(m) == 0
}
