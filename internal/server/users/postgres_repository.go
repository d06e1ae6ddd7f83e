package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository stores users in the users table. Roles are kept as a
// comma separated list.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrorAlreadyExists
	}
	return fmt.Errorf("db error: %w", err)
}

func joinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (username, email, phone, avatar, status, roles, salt, master_key_verifier, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.Phone, user.Avatar, user.Status,
		joinRoles(user.Roles), user.Salt, user.Verifier, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		return nil, mapWriteError(err)
	}

	return user, nil
}

const selectUser = `SELECT id, username, email, phone, avatar, status, roles, salt, master_key_verifier, created_at FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	var roles string
	err := row.Scan(&user.ID, &user.UserName, &user.Email, &user.Phone, &user.Avatar,
		&user.Status, &roles, &user.Salt, &user.Verifier, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.Roles = splitRoles(roles)
	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUser+" WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*User, error) {
	return r.getOne(ctx, "username = $1", userName)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) error {
	query :=
		`UPDATE users
		 SET username = $2, email = $3, phone = $4, avatar = $5, status = $6, roles = $7,
		     salt = $8, master_key_verifier = $9
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, user.ID, user.UserName, user.Email, user.Phone,
		user.Avatar, user.Status, joinRoles(user.Roles), user.Salt, user.Verifier)
	if err != nil {
		return mapWriteError(err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter, offset, limit int) ([]User, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Username != "" {
		args = append(args, "%"+f.Username+"%")
		conds = append(conds, fmt.Sprintf("username LIKE $%d", len(args)))
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		conds = append(conds, fmt.Sprintf("email LIKE $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY id LIMIT $%d OFFSET $%d", selectUser, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return list, total, nil
}
