package verifier

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront-backend/lib/telemetry"
	"storefront-backend/services/session/db"

	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("storefront.services.session.verifier")

var InvalidToken = fmt.Errorf("invalid token")

// Verifier resolves an opaque session token to the owning user id.
// Expired tokens are treated the same as unknown ones.
type Verifier struct {
	qry *db.Queries
}

func NewVerifier(database *sql.DB) Verifier {
	return Verifier{qry: db.New(database)}
}

func (v Verifier) VerifyToken(ctx context.Context, token string) (int64, error) {
	ctx, span := tracer.Start(ctx, "VerifyToken")
	defer span.End()

	session, err := v.qry.GetSession(ctx, token)
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "invalid token")
		return 0, InvalidToken
	} else if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "got unexpected error while reading session")
		return 0, err
	}

	if session.ExpiresAt <= time.Now().Unix() {
		span.SetStatus(codes.Error, "expired token")
		return 0, InvalidToken
	}

	return session.UserID, nil
}
