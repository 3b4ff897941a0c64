package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"notig/internal/database"
	"notig/internal/models"
)

// NoteResponse is the external representation of a full note.
type NoteResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Title        string     `json:"title"`
	Content      *string    `json:"content"`
	FontFamily   string     `json:"fontFamily"`
	FontSize     int        `json:"fontSize"`
	Color        string     `json:"color"`
	IsBold       bool       `json:"isBold"`
	IsItalic     bool       `json:"isItalic"`
	IsUnderline  bool       `json:"isUnderline"`
	IsPinned     bool       `json:"isPinned"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	LastModified time.Time  `json:"lastModified"`
}

// NoteSummaryResponse is a list entry; Preview replaces the content.
type NoteSummaryResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Title        string     `json:"title"`
	Preview      string     `json:"preview"`
	FontFamily   string     `json:"fontFamily"`
	FontSize     int        `json:"fontSize"`
	Color        string     `json:"color"`
	IsBold       bool       `json:"isBold"`
	IsItalic     bool       `json:"isItalic"`
	IsUnderline  bool       `json:"isUnderline"`
	IsPinned     bool       `json:"isPinned"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	LastModified time.Time  `json:"lastModified"`
}

func toNoteResponse(n *models.Note) NoteResponse {
	return NoteResponse{
		ID:           n.ID,
		UserID:       n.OwnerID,
		Title:        n.Title,
		Content:      n.Content,
		FontFamily:   n.Style.FontFamily,
		FontSize:     n.Style.FontSize,
		Color:        n.Style.Color,
		IsBold:       n.Style.IsBold,
		IsItalic:     n.Style.IsItalic,
		IsUnderline:  n.Style.IsUnderline,
		IsPinned:     n.IsPinned,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
		LastModified: n.LastModified(),
	}
}

func toNoteSummaryResponse(n *models.NoteSummary) NoteSummaryResponse {
	return NoteSummaryResponse{
		ID:           n.ID,
		UserID:       n.OwnerID,
		Title:        n.Title,
		Preview:      n.Preview,
		FontFamily:   n.Style.FontFamily,
		FontSize:     n.Style.FontSize,
		Color:        n.Style.Color,
		IsBold:       n.Style.IsBold,
		IsItalic:     n.Style.IsItalic,
		IsUnderline:  n.Style.IsUnderline,
		IsPinned:     n.IsPinned,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
		LastModified: n.LastModified(),
	}
}

type CreateNoteRequest struct {
	UserID      flexID   `json:"userId" swaggertype:"integer"`
	Title       string   `json:"title"`
	Content     *string  `json:"content"`
	FontFamily  string   `json:"fontFamily"`
	FontSize    *int     `json:"fontSize"`
	Color       string   `json:"color"`
	IsBold      flexBool `json:"isBold" swaggertype:"boolean"`
	IsItalic    flexBool `json:"isItalic" swaggertype:"boolean"`
	IsUnderline flexBool `json:"isUnderline" swaggertype:"boolean"`
}

// style returns the requested style with defaults for omitted fields.
func (req CreateNoteRequest) style() models.NoteStyle {
	style := models.NoteStyle{
		FontFamily:  req.FontFamily,
		FontSize:    models.DefaultFontSize,
		Color:       req.Color,
		IsBold:      bool(req.IsBold),
		IsItalic:    bool(req.IsItalic),
		IsUnderline: bool(req.IsUnderline),
	}
	if style.FontFamily == "" {
		style.FontFamily = models.DefaultFontFamily
	}
	if req.FontSize != nil && *req.FontSize > 0 {
		style.FontSize = *req.FontSize
	}
	if style.Color == "" {
		style.Color = models.DefaultColor
	}
	return style
}

// UpdateNoteRequest is a partial note edit. Omitted fields are left as is.
type UpdateNoteRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	FontFamily  *string   `json:"fontFamily"`
	FontSize    *int      `json:"fontSize"`
	Color       *string   `json:"color"`
	IsBold      *flexBool `json:"isBold" swaggertype:"boolean"`
	IsItalic    *flexBool `json:"isItalic" swaggertype:"boolean"`
	IsUnderline *flexBool `json:"isUnderline" swaggertype:"boolean"`
	IsPinned    *flexBool `json:"isPinned" swaggertype:"boolean"`
}

func (req UpdateNoteRequest) toUpdate() models.NoteUpdate {
	return models.NoteUpdate{
		Title:       req.Title,
		Content:     req.Content,
		FontFamily:  req.FontFamily,
		FontSize:    req.FontSize,
		Color:       req.Color,
		IsBold:      flexBoolPtr(req.IsBold),
		IsItalic:    flexBoolPtr(req.IsItalic),
		IsUnderline: flexBoolPtr(req.IsUnderline),
		IsPinned:    flexBoolPtr(req.IsPinned),
	}
}

func flexBoolPtr(b *flexBool) *bool {
	if b == nil {
		return nil
	}
	v := bool(*b)
	return &v
}

// @Summary      Create a note
// @Description  Creates a note for userId. Omitted style fields default to Inter, 16 and whitesmoke. New notes are never pinned.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        createNoteRequest  body      CreateNoteRequest  true  "Note"
// @Success      201                {object}  map[string]any     "status=created, noteId"
// @Failure      400                {object}  map[string]any     "missing required fields"
// @Failure      401                {object}  map[string]any
// @Failure      404                {object}  map[string]any     "user not found"
// @Router       /note [post]
func (s *Server) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.UserID <= 0 || req.Title == "" {
		s.fail(w, r, errMissingFields)
		return
	}
	ownerID := int64(req.UserID)

	if err := s.authorize(r, ownerID); err != nil {
		s.fail(w, r, err)
		return
	}

	owner, err := s.store.GetUserByID(r.Context(), ownerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if owner == nil {
		s.fail(w, r, errUserNotFound)
		return
	}

	noteID, err := s.store.CreateNote(r.Context(), database.CreateNoteParams{
		OwnerID:  ownerID,
		Title:    req.Title,
		Content:  req.Content,
		Style:    req.style(),
		IsPinned: false,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	notesCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, envelope{"status": statusCreated, "noteId": noteID})
}

// @Summary      List a user's notes
// @Description  Returns note summaries, most recently modified first. search filters by a case-insensitive substring of title or content.
// @Tags         notes
// @Produce      json
// @Param        userId  path      int             true   "Owner ID"
// @Param        search  query     string          false  "Substring to match"
// @Success      200     {object}  map[string]any  "status=ok, notes"
// @Failure      400     {object}  map[string]any
// @Failure      401     {object}  map[string]any
// @Failure      404     {object}  map[string]any  "user not found"
// @Router       /note/user/{userId} [get]
func (s *Server) ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "userId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.authorize(r, ownerID); err != nil {
		s.fail(w, r, err)
		return
	}

	owner, err := s.store.GetUserByID(r.Context(), ownerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if owner == nil {
		s.fail(w, r, errUserNotFound)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	summaries, err := s.store.GetUserNotes(r.Context(), ownerID, search)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	notes := make([]NoteSummaryResponse, 0, len(summaries))
	for i := range summaries {
		notes = append(notes, toNoteSummaryResponse(&summaries[i]))
	}

	writeJSON(w, http.StatusOK, envelope{"status": statusOK, "notes": notes})
}

// loadNote resolves the {id} path parameter to an existing note the caller
// may act on.
func (s *Server) loadNote(r *http.Request) (*models.Note, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	note, err := s.store.GetNoteByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, errNoteNotFound
	}

	if err := s.authorize(r, note.OwnerID); err != nil {
		return nil, err
	}
	return note, nil
}

// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Param        id   path      int             true  "Note ID"
// @Success      200  {object}  map[string]any  "status=ok, note"
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any  "note not found"
// @Router       /note/notes/{id} [get]
func (s *Server) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := s.loadNote(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"status": statusOK, "note": toNoteResponse(note)})
}

// @Summary      Update a note
// @Description  Applies a partial update. Only supplied fields are written; any write stamps updatedAt.
// @Tags         notes
// @Accept       json
// @Param        id                 path  int                true  "Note ID"
// @Param        updateNoteRequest  body  UpdateNoteRequest  true  "Fields to change"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any  "note not found"
// @Router       /note/update/{id} [put]
func (s *Server) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := s.loadNote(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req UpdateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	found, err := s.store.UpdateNote(r.Context(), note.ID, req.toUpdate())
	if err != nil {
		s.fail(w, r, fmt.Errorf("update note %d: %w", note.ID, err))
		return
	}
	if !found {
		s.fail(w, r, errNoteNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Delete a note
// @Tags         notes
// @Param        id   path  int  true  "Note ID"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any  "note not found"
// @Router       /note/delete/{id} [delete]
func (s *Server) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := s.loadNote(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	found, err := s.store.DeleteNote(r.Context(), note.ID)
	if err != nil {
		s.fail(w, r, fmt.Errorf("delete note %d: %w", note.ID, err))
		return
	}
	if !found {
		s.fail(w, r, errNoteNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
