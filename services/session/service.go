package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront-backend/lib/telemetry"
	"storefront-backend/services/session/db"
	"storefront-backend/services/session/verifier"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

var tracer = telemetry.Tracer("storefront.services.session")

// TokenCookie is the cookie the HTTP layer carries the session token in.
const TokenCookie = "session_token"

const sessionDuration = time.Hour * 24 * 7
const tokenLength = 48

var InvalidCredentials = fmt.Errorf("invalid username or password")

type Service struct {
	db       *sql.DB
	qry      *db.Queries
	verifier verifier.Verifier
}

func NewService(database *sql.DB) Service {
	return Service{
		db:       database,
		qry:      db.New(database),
		verifier: verifier.NewVerifier(database),
	}
}

func normalizeUsername(username string) string {
	return strings.Trim(strings.ToLower(username), " \t\n")
}

// UserFromToken resolves a session token to its user row. Missing,
// malformed, or expired tokens degrade to (nil, nil) rather than an
// error; callers treat nil as "no authenticated user".
func (s Service) UserFromToken(ctx context.Context, token string) (*db.User, error) {
	ctx, span := tracer.Start(ctx, "UserFromToken")
	defer span.End()

	if token == "" {
		return nil, nil
	}

	userID, err := s.verifier.VerifyToken(ctx, token)
	if err == verifier.InvalidToken {
		return nil, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "session verification failed", "err", err)
		return nil, nil
	}

	user, err := s.qry.GetUserById(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read session user", "err", err)
		return nil, nil
	}
	return &user, nil
}

func (s Service) createSession(ctx context.Context, txqry *db.Queries, userID int64) (string, error) {
	ctx, span := tracer.Start(ctx, "createSession")
	defer span.End()

	token, err := random.String(tokenLength)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate session token")
		return "", err
	}
	err = txqry.CreateSession(ctx, db.CreateSessionParams{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionDuration).Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert session row")
		return "", err
	}
	return token, nil
}

// SignUp creates a user and an initial session, returning the session
// token.
func (s Service) SignUp(ctx context.Context, username, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "SignUp")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash password")
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	userID, err := txqry.CreateUser(ctx, db.CreateUserParams{
		Username:     normalizeUsername(username),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create user")
		return "", err
	}
	token, err := s.createSession(ctx, txqry, userID)
	if err != nil {
		return "", err
	}

	err = tx.Commit()
	if err != nil {
		return "", err
	}
	return token, nil
}

// SignIn verifies credentials and mints a new session token.
func (s Service) SignIn(ctx context.Context, username, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "SignIn")
	defer span.End()

	user, err := s.qry.GetUserByUsername(ctx, normalizeUsername(username))
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "unknown username")
		return "", InvalidCredentials
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read user")
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		return "", InvalidCredentials
	}

	return s.createSession(ctx, s.qry, user.ID)
}

// SignOut deletes the session for the given token. Unknown tokens are
// a no-op. Sign-outs double as the purge point for expired sessions.
func (s Service) SignOut(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "SignOut")
	defer span.End()

	err := s.qry.DeleteSession(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete session")
		return err
	}

	err = s.qry.DeleteExpiredSessions(ctx, time.Now().Unix())
	if err != nil {
		slog.WarnContext(ctx, "failed to purge expired sessions", "err", err)
	}
	return nil
}
