package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"storefront-backend/lib/testutil"
	"storefront-backend/services/session/db"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) (Service, *db.Queries, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/session",
		DbSchema: db.Schema,
	})
	return NewService(res.DB), db.New(res.DB), cleanup
}

func TestSignUpFlow(t *testing.T) {
	service, _, cleanup := setup(t)
	defer cleanup()

	ctx := context.Background()
	token, err := service.SignUp(ctx, "  Alice ", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	require.NotEmpty(t, token)

	user, err := service.UserFromToken(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	service, _, cleanup := setup(t)
	defer cleanup()

	ctx := context.Background()
	_, err := service.SignUp(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	// normalization makes these the same username
	_, err = service.SignUp(ctx, "ALICE", "other")
	require.Error(t, err)
}

func TestSignIn(t *testing.T) {
	service, _, cleanup := setup(t)
	defer cleanup()

	ctx := context.Background()
	_, err := service.SignUp(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	token, err := service.SignIn(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	user, err := service.UserFromToken(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)

	_, err = service.SignIn(ctx, "alice", "wrong")
	require.ErrorIs(t, err, InvalidCredentials)

	_, err = service.SignIn(ctx, "bob", "hunter22")
	require.ErrorIs(t, err, InvalidCredentials)
}

func TestUserFromTokenSoftFailures(t *testing.T) {
	service, qry, cleanup := setup(t)
	defer cleanup()

	ctx := context.Background()

	user, err := service.UserFromToken(ctx, "")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = service.UserFromToken(ctx, "no-such-token")
	require.NoError(t, err)
	require.Nil(t, user)

	// an expired session reads the same as no session
	userID, err := qry.CreateUser(ctx, db.CreateUserParams{
		Username:     "alice",
		PasswordHash: "x",
		CreatedAt:    time.Now().Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = qry.CreateSession(ctx, db.CreateSessionParams{
		Token:     "expired-token",
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	user, err = service.UserFromToken(ctx, "expired-token")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestSignOut(t *testing.T) {
	service, _, cleanup := setup(t)
	defer cleanup()

	ctx := context.Background()
	token, err := service.SignUp(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	err = service.SignOut(ctx, token)
	if err != nil {
		t.Fatal(err)
	}

	user, err := service.UserFromToken(ctx, token)
	require.NoError(t, err)
	require.Nil(t, user)

	// signing out an already-deleted token is a no-op
	err = service.SignOut(ctx, token)
	require.NoError(t, err)
}

func TestSignOutPurgesExpiredSessions(t *testing.T) {
	service, qry, cleanup := setup(t)
	defer cleanup()

	ctx := context.Background()
	userID, err := qry.CreateUser(ctx, db.CreateUserParams{
		Username:     "alice",
		PasswordHash: "x",
		CreatedAt:    time.Now().Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = qry.CreateSession(ctx, db.CreateSessionParams{
		Token:     "stale",
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = qry.CreateSession(ctx, db.CreateSessionParams{
		Token:     "live",
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	err = service.SignOut(ctx, "no-such-token")
	require.NoError(t, err)

	_, err = qry.GetSession(ctx, "stale")
	require.ErrorIs(t, err, sql.ErrNoRows)

	// unexpired sessions survive the purge
	_, err = qry.GetSession(ctx, "live")
	require.NoError(t, err)
}
