package models

import "time"

// Style defaults applied when a note is created without them.
const (
	DefaultFontFamily = "Inter"
	DefaultFontSize   = 16
	DefaultColor      = "whitesmoke"
)

// PreviewLength is the number of content characters kept in list summaries.
const PreviewLength = 50

type NoteStyle struct {
	FontFamily  string
	FontSize    int
	Color       string
	IsBold      bool
	IsItalic    bool
	IsUnderline bool
}

type Note struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   *string
	Style     NoteStyle
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// LastModified is UpdatedAt when the note has been edited, CreatedAt otherwise.
func (n *Note) LastModified() time.Time {
	return lastModified(n.CreatedAt, n.UpdatedAt)
}

// NoteSummary is the list view of a note: Preview replaces the full content.
type NoteSummary struct {
	ID        int64
	OwnerID   int64
	Title     string
	Preview   string
	Style     NoteStyle
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (n *NoteSummary) LastModified() time.Time {
	return lastModified(n.CreatedAt, n.UpdatedAt)
}

func lastModified(created time.Time, updated *time.Time) time.Time {
	if updated != nil {
		return *updated
	}
	return created
}

// NoteUpdate holds the fields of a partial note update. A nil field is left
// untouched.
type NoteUpdate struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	FontFamily  *string `json:"fontFamily"`
	FontSize    *int    `json:"fontSize"`
	Color       *string `json:"color"`
	IsBold      *bool   `json:"isBold"`
	IsItalic    *bool   `json:"isItalic"`
	IsUnderline *bool   `json:"isUnderline"`
	IsPinned    *bool   `json:"isPinned"`
}

// FieldValue is one supplied field of a NoteUpdate, keyed by its external
// (camelCase) name.
type FieldValue struct {
	Field string
	Value any
}

// Fields lists the supplied fields in a fixed order.
func (u NoteUpdate) Fields() []FieldValue {
	var out []FieldValue
	add := func(field string, set bool, v func() any) {
		if set {
			out = append(out, FieldValue{Field: field, Value: v()})
		}
	}
	add("title", u.Title != nil, func() any { return *u.Title })
	add("content", u.Content != nil, func() any { return *u.Content })
	add("fontFamily", u.FontFamily != nil, func() any { return *u.FontFamily })
	add("fontSize", u.FontSize != nil, func() any { return *u.FontSize })
	add("color", u.Color != nil, func() any { return *u.Color })
	add("isBold", u.IsBold != nil, func() any { return *u.IsBold })
	add("isItalic", u.IsItalic != nil, func() any { return *u.IsItalic })
	add("isUnderline", u.IsUnderline != nil, func() any { return *u.IsUnderline })
	add("isPinned", u.IsPinned != nil, func() any { return *u.IsPinned })
	return out
}

func (u NoteUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}
