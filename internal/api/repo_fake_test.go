package api

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"notig/internal/database"
	"notig/internal/models"
)

var errStoreDown = errors.New("store unavailable")

// memRepo is an in-memory Repository for handler tests.
type memRepo struct {
	mu sync.Mutex

	nextUserID int64
	nextNoteID int64
	users      map[int64]*models.User
	notes      map[int64]*models.Note
	sessions   map[string]*models.Session

	// fail makes every call return errStoreDown.
	fail bool
}

var _ Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		users:    make(map[int64]*models.User),
		notes:    make(map[int64]*models.Note),
		sessions: make(map[string]*models.Session),
	}
}

func (m *memRepo) CreateUser(_ context.Context, username, email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errStoreDown
	}
	for _, u := range m.users {
		if u.Username == username {
			return 0, database.ErrUsernameTaken
		}
		if u.Email == email {
			return 0, database.ErrEmailTaken
		}
	}
	m.nextUserID++
	m.users[m.nextUserID] = &models.User{
		ID:           m.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return m.nextUserID, nil
}

func (m *memRepo) findUser(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.ID == id })
}

func (m *memRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Email == email })
}

func (m *memRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Username == username })
}

func (m *memRepo) UpdateUser(_ context.Context, id int64, username, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	u, ok := m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	now := time.Now()
	u.Username, u.Email, u.PasswordHash, u.UpdatedAt = username, email, passwordHash, &now
	return nil
}

func (m *memRepo) DeleteAccount(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	for id, n := range m.notes {
		if n.OwnerID == userID {
			delete(m.notes, id)
		}
	}
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	delete(m.users, userID)
	return nil
}

func (m *memRepo) CreateNote(_ context.Context, arg database.CreateNoteParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errStoreDown
	}
	if _, ok := m.users[arg.OwnerID]; !ok {
		return 0, errors.New("owner does not exist")
	}
	m.nextNoteID++
	m.notes[m.nextNoteID] = &models.Note{
		ID:        m.nextNoteID,
		OwnerID:   arg.OwnerID,
		Title:     arg.Title,
		Content:   arg.Content,
		Style:     arg.Style,
		IsPinned:  arg.IsPinned,
		CreatedAt: time.Now(),
	}
	return m.nextNoteID, nil
}

func (m *memRepo) GetUserNotes(_ context.Context, ownerID int64, search string) ([]models.NoteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}

	query := strings.ToLower(search)
	out := []models.NoteSummary{}
	for _, n := range m.notes {
		if n.OwnerID != ownerID {
			continue
		}
		var content string
		if n.Content != nil {
			content = *n.Content
		}
		if query != "" && !strings.Contains(strings.ToLower(n.Title), query) &&
			!strings.Contains(strings.ToLower(content), query) {
			continue
		}
		preview := []rune(content)
		if len(preview) > models.PreviewLength {
			preview = preview[:models.PreviewLength]
		}
		out = append(out, models.NoteSummary{
			ID:        n.ID,
			OwnerID:   n.OwnerID,
			Title:     n.Title,
			Preview:   string(preview),
			Style:     n.Style,
			IsPinned:  n.IsPinned,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.UpdatedAt != nil && b.UpdatedAt == nil:
			return true
		case a.UpdatedAt == nil && b.UpdatedAt != nil:
			return false
		case a.UpdatedAt != nil && !a.UpdatedAt.Equal(*b.UpdatedAt):
			return a.UpdatedAt.After(*b.UpdatedAt)
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out, nil
}

func (m *memRepo) GetNoteByID(_ context.Context, id int64) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memRepo) UpdateNote(_ context.Context, id int64, update models.NoteUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false, errStoreDown
	}
	n, ok := m.notes[id]
	if !ok {
		return false, nil
	}
	if update.IsEmpty() {
		return true, nil
	}
	if update.Title != nil {
		n.Title = *update.Title
	}
	if update.Content != nil {
		content := *update.Content
		n.Content = &content
	}
	if update.FontFamily != nil {
		n.Style.FontFamily = *update.FontFamily
	}
	if update.FontSize != nil {
		n.Style.FontSize = *update.FontSize
	}
	if update.Color != nil {
		n.Style.Color = *update.Color
	}
	if update.IsBold != nil {
		n.Style.IsBold = *update.IsBold
	}
	if update.IsItalic != nil {
		n.Style.IsItalic = *update.IsItalic
	}
	if update.IsUnderline != nil {
		n.Style.IsUnderline = *update.IsUnderline
	}
	if update.IsPinned != nil {
		n.IsPinned = *update.IsPinned
	}
	now := time.Now()
	n.UpdatedAt = &now
	return true, nil
}

func (m *memRepo) DeleteNote(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false, errStoreDown
	}
	if _, ok := m.notes[id]; !ok {
		return false, nil
	}
	delete(m.notes, id)
	return true, nil
}

func (m *memRepo) CreateSession(_ context.Context, arg database.CreateSessionParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	m.sessions[arg.Token] = &models.Session{
		ID:        arg.ID,
		UserID:    arg.UserID,
		Token:     arg.Token,
		UserAgent: arg.UserAgent,
		ClientIP:  arg.ClientIP,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (m *memRepo) GetSessionUserID(_ context.Context, token string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, false, errStoreDown
	}
	s, ok := m.sessions[token]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return 0, false, nil
	}
	if _, ok := m.users[s.UserID]; !ok {
		return 0, false, nil
	}
	return s.UserID, true, nil
}

func (m *memRepo) DeleteSessionByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	delete(m.sessions, token)
	return nil
}

func (m *memRepo) DeleteExpiredSessions(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errStoreDown
	}
	var n int64
	for token, s := range m.sessions {
		if s.UserID == userID && !s.ExpiresAt.After(time.Now()) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) ListSessionsForUser(_ context.Context, userID int64) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}
	var out []models.Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.ExpiresAt.After(time.Now()) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteAllSessionsForUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *memRepo) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	return nil
}

func (m *memRepo) setFail(v bool) {
	m.mu.Lock()
	m.fail = v
	m.mu.Unlock()
}
