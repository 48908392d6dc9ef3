package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO users
				(username, email, password_hash, role, status, avatar_ref, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		user.Username, user.Email, user.PasswordHash,
		string(user.Role), string(user.Status), user.AvatarRef, user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, err
	}

	user.ID = id
	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.scanOne(r.db.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, role, status, avatar_ref, created_at
			FROM users WHERE id = $1;`,
		id,
	))
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.scanOne(r.db.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, role, status, avatar_ref, created_at
			FROM users WHERE username = $1;`,
		username,
	))
}

func (r *Repo) All(ctx context.Context) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, username, email, password_hash, role, status, avatar_ref, created_at
			FROM users ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		var role, status string
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&role, &status, &user.AvatarRef, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		user.Role, user.Status = roleOf(role), Status(status)
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetStatus moves a user account between the active and archived user
// directories, independent of any workout record's partition.
func (r *Repo) SetStatus(ctx context.Context, id int, status Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2;`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) GetAvatar(ctx context.Context, id int) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getAvatar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var avatarRef string
	if err := r.db.QueryRow(ctx, `SELECT avatar_ref FROM users WHERE id = $1;`, id).Scan(&avatarRef); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return avatarRef, nil
}

func (r *Repo) SetAvatar(ctx context.Context, id int, avatarRef string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setAvatar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET avatar_ref = $1 WHERE id = $2;`, avatarRef, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// WorkoutCounts returns the number of ledger records per user across
// both partitions, for the admin data overview.
func (r *Repo) WorkoutCounts(ctx context.Context) (_ map[int]int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.workoutCounts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT owner_id, COUNT(*) FROM workout GROUP BY owner_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var ownerID, count int
		if err := rows.Scan(&ownerID, &count); err != nil {
			return nil, err
		}
		counts[ownerID] = count
	}
	return counts, rows.Err()
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var user User
	var role, status string
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&role, &status, &user.AvatarRef, &user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Role, user.Status = roleOf(role), Status(status)
	return &user, nil
}

func roleOf(role string) auth.Role {
	if role == string(auth.RoleAdmin) {
		return auth.RoleAdmin
	}
	return auth.RoleUser
}
