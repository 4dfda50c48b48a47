package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// pgReservationStore is the postgres driver behind the same
// ReservationRepository contract as the file store. Selected with
// STORE_DRIVER=postgres. Writes always replace a user's whole
// reservation list inside one transaction, so readers never observe a
// partially saved user.
type pgReservationStore struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPgReservationStore(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &pgReservationStore{
		db:  db,
		log: log.With(zap.String("repository", "reservation-pg")),
	}
}

const pgSelectReservations = `
	SELECT id, code, user_phone, movie_id, movie_title, showtime, show_date,
	       seats, adults, teens, children, total_price, status,
	       COALESCE(payment_method, ''), created_at, updated_at
	FROM reservations
`

func scanReservation(row pgx.Rows) (*entity.Reservation, error) {
	var r entity.Reservation
	var method string
	err := row.Scan(
		&r.ID, &r.Code, &r.UserPhone, &r.MovieID, &r.MovieTitle,
		&r.Showtime, &r.Date, &r.Seats,
		&r.Party.Adults, &r.Party.Teens, &r.Party.Children,
		&r.TotalPrice, &r.Status, &method, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.PaymentMethod = entity.PaymentMethod(method)
	return &r, nil
}

func (s *pgReservationStore) LoadAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := s.db.Query(ctx, `SELECT phone, password_hash FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: load users: %v", ErrPersistence, err)
	}
	defer rows.Close()

	var users []*entity.User
	byKey := make(map[string]*entity.User)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Phone, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("%w: scan user: %v", ErrPersistence, err)
		}
		users = append(users, &u)
		byKey[u.Phone] = &u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load users: %v", ErrPersistence, err)
	}

	resRows, err := s.db.Query(ctx, pgSelectReservations+` ORDER BY user_phone, position`)
	if err != nil {
		return nil, fmt.Errorf("%w: load reservations: %v", ErrPersistence, err)
	}
	defer resRows.Close()

	for resRows.Next() {
		r, err := scanReservation(resRows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan reservation: %v", ErrPersistence, err)
		}
		owner, ok := byKey[r.UserPhone]
		if !ok {
			s.log.Warn("Reservation without owner row", zap.String("id", r.ID.String()))
			continue
		}
		owner.Reservations = append(owner.Reservations, r)
	}
	if err := resRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load reservations: %v", ErrPersistence, err)
	}

	return users, nil
}

func (s *pgReservationStore) SaveAll(ctx context.Context, users []*entity.User) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	for _, u := range users {
		if err := saveUserTx(ctx, tx, u); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}
	return nil
}

func (s *pgReservationStore) FindUser(ctx context.Context, phone string) (*entity.User, error) {
	var u entity.User
	err := s.db.QueryRow(ctx,
		`SELECT phone, password_hash FROM users WHERE phone = $1`, phone,
	).Scan(&u.Phone, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", phone, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user %s: %v", ErrPersistence, phone, err)
	}

	rows, err := s.db.Query(ctx, pgSelectReservations+` WHERE user_phone = $1 ORDER BY position`, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: load reservations of %s: %v", ErrPersistence, phone, err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan reservation: %v", ErrPersistence, err)
		}
		u.Reservations = append(u.Reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load reservations of %s: %v", ErrPersistence, phone, err)
	}
	return &u, nil
}

func (s *pgReservationStore) CreateUser(ctx context.Context, user *entity.User) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO users (phone, password_hash, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (phone) DO NOTHING
	`, user.Phone, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: create user %s: %v", ErrPersistence, user.Phone, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.Phone, ErrDuplicate)
	}
	return nil
}

func (s *pgReservationStore) SaveUser(ctx context.Context, user *entity.User) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	if err := saveUserTx(ctx, tx, user); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}
	return nil
}

func saveUserTx(ctx context.Context, tx pgx.Tx, user *entity.User) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (phone, password_hash, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (phone) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, user.Phone, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: upsert user %s: %v", ErrPersistence, user.Phone, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reservations WHERE user_phone = $1`, user.Phone); err != nil {
		return fmt.Errorf("%w: clear reservations of %s: %v", ErrPersistence, user.Phone, err)
	}

	for i, r := range user.Reservations {
		var method *string
		if r.PaymentMethod != "" {
			m := string(r.PaymentMethod)
			method = &m
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO reservations (
				id, code, user_phone, movie_id, movie_title, showtime, show_date,
				seats, adults, teens, children, total_price, status,
				payment_method, created_at, updated_at, position
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		`,
			r.ID, r.Code, user.Phone, r.MovieID, r.MovieTitle, r.Showtime, r.Date,
			r.Seats, r.Party.Adults, r.Party.Teens, r.Party.Children,
			r.TotalPrice, r.Status, method, r.CreatedAt, r.UpdatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("%w: insert reservation %s: %v", ErrPersistence, r.ID, err)
		}
	}
	return nil
}

func (s *pgReservationStore) AppendReservation(ctx context.Context, phone string, r *entity.Reservation) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1)`, phone,
	).Scan(&exists); err != nil {
		return fmt.Errorf("%w: check user %s: %v", ErrPersistence, phone, err)
	}
	if !exists {
		return fmt.Errorf("user %s: %w", phone, ErrNotFound)
	}

	var position int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM reservations WHERE user_phone = $1`, phone,
	).Scan(&position); err != nil {
		return fmt.Errorf("%w: next position for %s: %v", ErrPersistence, phone, err)
	}

	var method *string
	if r.PaymentMethod != "" {
		m := string(r.PaymentMethod)
		method = &m
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (
			id, code, user_phone, movie_id, movie_title, showtime, show_date,
			seats, adults, teens, children, total_price, status,
			payment_method, created_at, updated_at, position
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		r.ID, r.Code, phone, r.MovieID, r.MovieTitle, r.Showtime, r.Date,
		r.Seats, r.Party.Adults, r.Party.Teens, r.Party.Children,
		r.TotalPrice, r.Status, method, r.CreatedAt, r.UpdatedAt, position,
	)
	if err != nil {
		return fmt.Errorf("%w: insert reservation %s: %v", ErrPersistence, r.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}
	return nil
}

func (s *pgReservationStore) UpdateReservation(ctx context.Context, id uuid.UUID, apply func(r *entity.Reservation, ownerPhone string) error) (*entity.Reservation, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	// Row lock so two updates of one reservation serialize.
	rows, err := tx.Query(ctx, pgSelectReservations+` WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("%w: lock reservation %s: %v", ErrPersistence, id, err)
	}
	if !rows.Next() {
		rows.Close()
		return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	r, err := scanReservation(rows)
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: scan reservation: %v", ErrPersistence, err)
	}

	if err := apply(r, r.UserPhone); err != nil {
		return nil, err
	}

	var method *string
	if r.PaymentMethod != "" {
		m := string(r.PaymentMethod)
		method = &m
	}
	if _, err := tx.Exec(ctx, `
		UPDATE reservations SET status = $2, payment_method = $3, updated_at = $4
		WHERE id = $1
	`, r.ID, r.Status, method, r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: update reservation %s: %v", ErrPersistence, r.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}
	return r, nil
}

func (s *pgReservationStore) FindReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, *entity.User, error) {
	rows, err := s.db.Query(ctx, pgSelectReservations+` WHERE id = $1`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: find reservation %s: %v", ErrPersistence, id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	r, err := scanReservation(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: scan reservation: %v", ErrPersistence, err)
	}
	rows.Close()

	owner, err := s.FindUser(ctx, r.UserPhone)
	if err != nil {
		return nil, nil, err
	}
	return r, owner, nil
}
