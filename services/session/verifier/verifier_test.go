package verifier

import (
	"context"
	"testing"
	"time"

	"storefront-backend/lib/testutil"
	"storefront-backend/services/session/db"

	"github.com/stretchr/testify/require"
)

func TestVerifyToken(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/session/verifier",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	qry := db.New(res.DB)
	v := NewVerifier(res.DB)

	userID, err := qry.CreateUser(ctx, db.CreateUserParams{
		Username:     "alice",
		PasswordHash: "x",
		CreatedAt:    time.Now().Unix(),
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
	err = qry.CreateSession(ctx, db.CreateSessionParams{
		Token:     "stale",
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := v.VerifyToken(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, userID, got)

	_, err = v.VerifyToken(ctx, "stale")
	require.ErrorIs(t, err, InvalidToken)

	_, err = v.VerifyToken(ctx, "unknown")
	require.ErrorIs(t, err, InvalidToken)
}
