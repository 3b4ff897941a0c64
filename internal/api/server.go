package api

import (
	"context"
	"sync"

	"notig/internal/config"
	"notig/internal/database"
	"notig/internal/models"

	"go.uber.org/zap"
)

// Repository is the persistence surface the handlers depend on.
// *database.Store implements it.
type Repository interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, username, email, passwordHash string) error
	DeleteAccount(ctx context.Context, userID int64) error

	CreateNote(ctx context.Context, arg database.CreateNoteParams) (int64, error)
	GetUserNotes(ctx context.Context, ownerID int64, search string) ([]models.NoteSummary, error)
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
	UpdateNote(ctx context.Context, id int64, update models.NoteUpdate) (bool, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)

	CreateSession(ctx context.Context, arg database.CreateSessionParams) error
	GetSessionUserID(ctx context.Context, token string) (int64, bool, error)
	DeleteSessionByToken(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, userID int64) (int64, error)
	ListSessionsForUser(ctx context.Context, userID int64) ([]models.Session, error)
	DeleteAllSessionsForUser(ctx context.Context, userID int64) error

	Ping(ctx context.Context) error
}

type Server struct {
	config *config.Config
	store  Repository
	logger *zap.SugaredLogger

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewServer(cfg *config.Config, store Repository, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
}
