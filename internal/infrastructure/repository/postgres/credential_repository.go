package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	qb "github.com/riskibarqy/fantasy-sync/internal/platform/querybuilder"
)

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Upsert(ctx context.Context, item credential.Credential) error {
	if err := item.Validate(); err != nil {
		return err
	}

	updatedAt := item.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	model := credentialTableModel{
		UserID:       item.UserID,
		Provider:     string(item.Provider),
		AccessToken:  item.AccessToken,
		RefreshToken: item.RefreshToken,
		Cookie:       item.Cookie,
		ExpiresAt:    nullTime(item.ExpiresAt),
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	}
	query, args, err := qb.UpsertModel("provider_credentials", model, "user_id", "provider")
	if err != nil {
		return fmt.Errorf("build upsert credential query: %w", err)
	}
	if err := upsert(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("upsert credential %s/%s: %w", item.UserID, item.Provider, err)
	}

	return nil
}

func (r *CredentialRepository) ListByUser(ctx context.Context, userID string) ([]credential.Credential, error) {
	query, args, err := qb.Select(qb.Columns(credentialTableModel{})...).From("provider_credentials").
		Where(qb.Eq("user_id", userID)).
		OrderBy("provider").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select credentials query: %w", err)
	}

	var rows []credentialTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select credentials: %w", err)
	}

	out := make([]credential.Credential, 0, len(rows))
	for _, row := range rows {
		item := credential.Credential{
			UserID:       row.UserID,
			Provider:     provider.ID(row.Provider),
			AccessToken:  row.AccessToken,
			RefreshToken: row.RefreshToken,
			Cookie:       row.Cookie,
			UpdatedAt:    row.UpdatedAt,
		}
		if row.ExpiresAt.Valid {
			item.ExpiresAt = row.ExpiresAt.Time
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *CredentialRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT user_id FROM provider_credentials ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("select credential user ids: %w", err)
	}

	return ids, nil
}
