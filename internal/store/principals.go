// ABOUTME: Principal CRUD methods for the SQLite store
// ABOUTME: Partitioned by role with projection of credential and refresh-token fields

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CreatePrincipal inserts a new principal into the partition named by p.Role.
// Emails are stored lowercase. The course field is persisted for users only.
func (s *SQLiteStore) CreatePrincipal(ctx context.Context, p *Principal) error {
	table, err := tableFor(p.Role)
	if err != nil {
		return err
	}

	email := strings.ToLower(p.Email)
	createdAt := p.CreatedAt.UTC().Format(time.RFC3339)

	if p.Role == RoleUser {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO users (id, email, full_name, phone_number, course, password_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, email, p.FullName, p.PhoneNumber, p.Course, p.PasswordHash, createdAt)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO admins (id, email, full_name, phone_number, password_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, email, p.FullName, p.PhoneNumber, p.PasswordHash, createdAt)
	}
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting into %s: %w", table, err)
	}

	p.Email = email
	s.logger.Info("created principal", "role", p.Role, "id", p.ID)
	return nil
}

// GetPrincipal retrieves a principal by ID. The password hash and refresh
// token columns are excluded from the projection.
func (s *SQLiteStore) GetPrincipal(ctx context.Context, role Role, id string) (*Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, email, full_name, phone_number, %s created_at
		FROM %s
		WHERE id = ?
	`, courseColumn(role), table)

	row := s.db.QueryRowContext(ctx, query, id)
	return scanPrincipal(row, role, false)
}

// GetPrincipalByEmail retrieves the full row for credential verification,
// including the password hash and refresh token.
func (s *SQLiteStore) GetPrincipalByEmail(ctx context.Context, role Role, email string) (*Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, email, full_name, phone_number, %s created_at, password_hash, refresh_token
		FROM %s
		WHERE email = ?
	`, courseColumn(role), table)

	row := s.db.QueryRowContext(ctx, query, strings.ToLower(email))
	return scanPrincipal(row, role, true)
}

// GetRefreshToken returns the stored refresh token for a principal. ok is
// false when the column is NULL.
func (s *SQLiteStore) GetRefreshToken(ctx context.Context, role Role, id string) (string, bool, error) {
	table, err := tableFor(role)
	if err != nil {
		return "", false, err
	}

	var token sql.NullString
	query := fmt.Sprintf("SELECT refresh_token FROM %s WHERE id = ?", table)
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&token); err != nil {
		if err == sql.ErrNoRows {
			return "", false, ErrNotFound
		}
		return "", false, fmt.Errorf("querying refresh token: %w", err)
	}

	return token.String, token.Valid, nil
}

// SetRefreshToken atomically overwrites the principal's refresh token.
func (s *SQLiteStore) SetRefreshToken(ctx context.Context, role Role, id, token string) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET refresh_token = ? WHERE id = ?", table)
	result, err := s.db.ExecContext(ctx, query, token, id)
	if err != nil {
		return fmt.Errorf("updating refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ClearRefreshToken unsets the refresh token. A principal with no active
// token clears successfully; only a missing principal is an error.
func (s *SQLiteStore) ClearRefreshToken(ctx context.Context, role Role, id string) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET refresh_token = NULL WHERE id = ?", table)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("clearing refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListUsers returns all user principals (projected), newest first.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*Principal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, full_name, phone_number, course, created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []*Principal
	for rows.Next() {
		var p Principal
		var createdAtStr string
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.PhoneNumber, &p.Course, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		p.Role = RoleUser
		p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		users = append(users, &p)
	}

	return users, rows.Err()
}

// DeleteUser removes a user principal by ID.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted user", "id", id)
	return nil
}

// courseColumn returns the course column selector for the partition; admins
// have no course column so an empty literal is selected instead.
func courseColumn(role Role) string {
	if role == RoleUser {
		return "course,"
	}
	return "'',"
}

// scanPrincipal scans a single principal row. When withSecrets is true the
// query included password_hash and refresh_token.
func scanPrincipal(row *sql.Row, role Role, withSecrets bool) (*Principal, error) {
	var p Principal
	var createdAtStr string
	var err error

	if withSecrets {
		var refreshToken sql.NullString
		err = row.Scan(&p.ID, &p.Email, &p.FullName, &p.PhoneNumber, &p.Course, &createdAtStr, &p.PasswordHash, &refreshToken)
		p.RefreshToken = refreshToken.String
		p.HasRefreshToken = refreshToken.Valid
	} else {
		err = row.Scan(&p.ID, &p.Email, &p.FullName, &p.PhoneNumber, &p.Course, &createdAtStr)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning principal: %w", err)
	}

	p.Role = role
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &p, nil
}
