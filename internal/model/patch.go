package model

// PatchField is one optional column of a BookmarkPatch.
//
// Set is false when the key was absent from the request. A set field with a
// nil Value writes NULL.
type PatchField[T any] struct {
	Set   bool
	Value *T
}

// Of returns a set field holding v.
func Of[T any](v T) PatchField[T] {
	return PatchField[T]{Set: true, Value: &v}
}

// Null returns a set field that writes NULL.
func Null[T any]() PatchField[T] {
	return PatchField[T]{Set: true}
}

func (f PatchField[T]) value() any {
	if f.Value == nil {
		return nil
	}
	return *f.Value
}

// BookmarkPatch is a partial update of a bookmark. Only set fields are written.
type BookmarkPatch struct {
	Title       PatchField[string]
	URL         PatchField[string]
	Description PatchField[string]
	Rating      PatchField[int]
}

// Columns maps every set field to its column name.
func (p BookmarkPatch) Columns() map[string]any {
	columns := make(map[string]any, 4)
	if p.Title.Set {
		columns["title"] = p.Title.value()
	}
	if p.URL.Set {
		columns["url"] = p.URL.value()
	}
	if p.Description.Set {
		columns["description"] = p.Description.value()
	}
	if p.Rating.Set {
		columns["rating"] = p.Rating.value()
	}
	return columns
}

// IsEmpty reports whether no field is set.
func (p BookmarkPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}
