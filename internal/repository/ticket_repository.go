package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"summit-registration/internal/model"
	"summit-registration/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	FindByCode(ctx context.Context, ticketCode string) (*model.Ticket, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.Ticket, error)
	List(ctx context.Context) ([]*model.Ticket, error)
	ListEmailFailed(ctx context.Context) ([]*model.Ticket, error)
	CountIssued(ctx context.Context) (int, error)
	CountUsed(ctx context.Context) (int, error)
	// MarkUsed is the single atomic door check-in write: it only
	// succeeds while validation_status is not yet used, so exactly one
	// of two concurrent scans wins.
	MarkUsed(ctx context.Context, ticketCode string) (*model.Ticket, error)
	UpdateEmailStatus(ctx context.Context, ticketCode string, status model.TicketStatus) error
	DeleteAll(ctx context.Context) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
	ExistsByOrderID(ctx context.Context, tx pgx.Tx, orderID string) (bool, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, ticket_code, order_id, participant_name, participant_email, participant_phone,
		qr_code, status, validation_status, used_count, validated_at, complimentary, created_at, updated_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var t model.Ticket
	err := row.Scan(
		&t.ID,
		&t.TicketCode,
		&t.OrderID,
		&t.ParticipantName,
		&t.ParticipantEmail,
		&t.ParticipantPhone,
		&t.QRCode,
		&t.Status,
		&t.ValidationStatus,
		&t.UsedCount,
		&t.ValidatedAt,
		&t.Complimentary,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
			ticket_code, order_id, participant_name, participant_email, participant_phone,
			qr_code, status, validation_status, complimentary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ticketColumns

	created, err := scanTicket(tx.QueryRow(ctx, query,
		ticket.TicketCode,
		ticket.OrderID,
		ticket.ParticipantName,
		ticket.ParticipantEmail,
		ticket.ParticipantPhone,
		ticket.QRCode,
		ticket.Status,
		ticket.ValidationStatus,
		ticket.Complimentary,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// tickets carry two unique constraints; which one fired
			// decides whether the caller regenerates the code or treats
			// the order as already ticketed.
			if pgErr.ConstraintName == "tickets_order_id_key" {
				return nil, apperrors.ErrTicketAlreadyIssued
			}
			return nil, apperrors.ErrDuplicateTicketCode
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return created, nil
}

func (r *TicketRepositoryImpl) ExistsByOrderID(ctx context.Context, tx pgx.Tx, orderID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM tickets WHERE order_id = $1)
	`

	var exists bool
	err := tx.QueryRow(ctx, query, orderID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *TicketRepositoryImpl) FindByCode(ctx context.Context, ticketCode string) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ticket_code = $1
	`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, ticketCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE order_id = $1
	`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		ORDER BY created_at DESC
	`

	return r.queryTickets(ctx, query)
}

func (r *TicketRepositoryImpl) ListEmailFailed(ctx context.Context) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status = $1
		ORDER BY created_at DESC
	`

	return r.queryTickets(ctx, query, model.TicketStatusEmailFailed)
}

func (r *TicketRepositoryImpl) queryTickets(ctx context.Context, query string, args ...interface{}) ([]*model.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) MarkUsed(ctx context.Context, ticketCode string) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET validation_status = $1,
		    used_count = used_count + 1,
		    validated_at = $2,
		    updated_at = $2
		WHERE ticket_code = $3 AND validation_status != $1
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query,
		model.ValidationStatusUsed, time.Now().UTC(), ticketCode,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketAlreadyUsed
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) UpdateEmailStatus(ctx context.Context, ticketCode string, status model.TicketStatus) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidStatus
	}

	query := `
		UPDATE tickets
		SET status = $1, updated_at = $2
		WHERE ticket_code = $3
	`

	result, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), ticketCode)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

func (r *TicketRepositoryImpl) CountIssued(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	return count, err
}

func (r *TicketRepositoryImpl) CountUsed(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE validation_status = $1`,
		model.ValidationStatusUsed,
	).Scan(&count)
	return count, err
}

func (r *TicketRepositoryImpl) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tickets`)
	return err
}
