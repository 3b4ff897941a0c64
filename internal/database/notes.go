package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"notig/internal/models"

	"github.com/jackc/pgx/v5"
)

type CreateNoteParams struct {
	OwnerID  int64
	Title    string
	Content  *string
	Style    models.NoteStyle
	IsPinned bool
}

var (
	noteSelectColumns = selectList(
		"id", "userId", "title", "content", "fontFamily", "fontSize", "color",
		"isBold", "isItalic", "isUnderline", "isPinned", "createdAt", "updatedAt",
	)
	summarySelectColumns = selectList(
		"id", "userId", "title", "=COALESCE(substr(content, 1, "+strconv.Itoa(models.PreviewLength)+"), '') AS preview",
		"fontFamily", "fontSize", "color",
		"isBold", "isItalic", "isUnderline", "isPinned", "createdAt", "updatedAt",
	)
)

// flags collects the 0/1 flag columns of a row before decoding.
type flags struct {
	bold, italic, underline, pinned int16
}

func (f flags) apply(style *models.NoteStyle, pinned *bool) {
	style.IsBold = intToBool(f.bold)
	style.IsItalic = intToBool(f.italic)
	style.IsUnderline = intToBool(f.underline)
	*pinned = intToBool(f.pinned)
}

func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) (int64, error) {
	query := `
		INSERT INTO notes (user_id, title, content, font_family, font_size, color,
			is_bold, is_italic, is_underline, is_pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := q.db.QueryRow(ctx, query,
		arg.OwnerID,
		arg.Title,
		arg.Content,
		arg.Style.FontFamily,
		arg.Style.FontSize,
		arg.Style.Color,
		boolToInt(arg.Style.IsBold),
		boolToInt(arg.Style.IsItalic),
		boolToInt(arg.Style.IsUnderline),
		boolToInt(arg.IsPinned),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}
	return id, nil
}

func (q *Queries) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT ` + noteSelectColumns + ` FROM notes WHERE id = $1`

	var note models.Note
	var f flags
	err := q.db.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.Style.FontFamily,
		&note.Style.FontSize,
		&note.Style.Color,
		&f.bold,
		&f.italic,
		&f.underline,
		&f.pinned,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	f.apply(&note.Style, &note.IsPinned)

	return &note, nil
}

// GetUserNotes lists the owner's notes, most recently edited first. Notes
// that were never edited sort after edited ones, then by creation time. A
// non-empty search keeps notes whose title or content contains it.
func (q *Queries) GetUserNotes(ctx context.Context, ownerID int64, search string) ([]models.NoteSummary, error) {
	query := `
		SELECT ` + summarySelectColumns + `
		FROM notes
		WHERE user_id = $1
		  AND ($2 = '' OR strpos(lower(title), lower($2)) > 0 OR strpos(lower(COALESCE(content, '')), lower($2)) > 0)
		ORDER BY updated_at DESC NULLS LAST, created_at DESC, id DESC
	`
	rows, err := q.db.Query(ctx, query, ownerID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.NoteSummary
	for rows.Next() {
		var note models.NoteSummary
		var f flags
		if err := rows.Scan(
			&note.ID,
			&note.OwnerID,
			&note.Title,
			&note.Preview,
			&note.Style.FontFamily,
			&note.Style.FontSize,
			&note.Style.Color,
			&f.bold,
			&f.italic,
			&f.underline,
			&f.pinned,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		f.apply(&note.Style, &note.IsPinned)
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if notes == nil {
		return []models.NoteSummary{}, nil
	}

	return notes, nil
}

// UpdateNote writes only the supplied fields and stamps updated_at. An empty
// update is a no-op reported as found.
func (q *Queries) UpdateNote(ctx context.Context, id int64, update models.NoteUpdate) (bool, error) {
	fields := update.Fields()
	if len(fields) == 0 {
		return true, nil
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for _, fv := range fields {
		col, ok := columnByField[fv.Field]
		if !ok {
			return false, fmt.Errorf("update note: unknown field %q", fv.Field)
		}
		args = append(args, encodeValue(col, fv.Value))
		sets = append(sets, fmt.Sprintf("%s = $%d", col.Column, len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE notes SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := q.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update note %d: %w", id, err)
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) DeleteNote(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM notes WHERE id = $1`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) DeleteUserNotes(ctx context.Context, ownerID int64) error {
	query := `DELETE FROM notes WHERE user_id = $1`
	_, err := q.db.Exec(ctx, query, ownerID)
	return err
}
