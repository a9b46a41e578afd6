package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/mapping"
)

type PgxFolioRepository struct {
	BaseRepository
}

func newPgxFolioRepository(pool *pgxpool.Pool) *PgxFolioRepository {
	return &PgxFolioRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FolioRepositoryFacade = (*PgxFolioRepository)(nil)

const folioColumns = `folio_id, reservation_id, guest_name, room_id, room_number, credit_limit, status, balance,
	opened_at, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by, version`

const folioTransactionColumns = `transaction_id, folio_id, seq, posted_at, business_date, txn_type, category,
	description, debit, credit, balance_after, posted_by, tax, payment_method, reference, stay_date`

// FindFolioByReservationID loads the header and its log. Inside a transaction the header
// row is locked until commit.
func (r *PgxFolioRepository) FindFolioByReservationID(ctx context.Context, reservationID string) (*domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE reservation_id = $1`
	if inTx(ctx) {
		query += " FOR UPDATE"
	}
	var m models.Folio
	err := r.db(ctx).QueryRow(ctx, query, reservationID).Scan(
		&m.FolioID, &m.ReservationID, &m.GuestName, &m.RoomID, &m.RoomNumber, &m.CreditLimit, &m.Status, &m.Balance,
		&m.OpenedAt, &m.ClosedAt, &m.ClosedBy, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version)
	if err != nil {
		return nil, mapError("folio for reservation "+reservationID, err)
	}

	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+folioTransactionColumns+` FROM folio_transactions WHERE folio_id = $1 ORDER BY seq`, m.FolioID)
	if err != nil {
		return nil, mapError("failed to query transactions for folio "+m.FolioID, err)
	}
	defer rows.Close()

	txns := make([]models.FolioTransaction, 0)
	for rows.Next() {
		var t models.FolioTransaction
		if err := rows.Scan(&t.TransactionID, &t.FolioID, &t.Seq, &t.PostedAt, &t.BusinessDate, &t.Type, &t.Category,
			&t.Description, &t.Debit, &t.Credit, &t.BalanceAfter, &t.PostedBy, &t.Tax, &t.PaymentMethod, &t.Reference, &t.StayDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan folio transaction row", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating folio transaction rows", err)
	}

	folio := mapping.ToDomainFolio(m, txns)
	return &folio, nil
}

func (r *PgxFolioRepository) insertHeader(ctx context.Context, folio *domain.Folio) error {
	m := mapping.ToModelFolio(*folio)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO folios (`+folioColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1)`,
		m.FolioID, m.ReservationID, m.GuestName, m.RoomID, m.RoomNumber, m.CreditLimit, m.Status, m.Balance,
		m.OpenedAt, m.ClosedAt, m.ClosedBy, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError("failed to insert folio "+folio.FolioID, err)
	}
	return nil
}

// updateHeader writes the header if the stored version still matches.
func (r *PgxFolioRepository) updateHeader(ctx context.Context, folio *domain.Folio) error {
	m := mapping.ToModelFolio(*folio)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE folios SET
			guest_name = $3, room_id = $4, room_number = $5, credit_limit = $6, status = $7, balance = $8,
			closed_at = $9, closed_by = $10, last_updated_at = $11, last_updated_by = $12, version = version + 1
		WHERE folio_id = $1 AND version = $2`,
		m.FolioID, m.Version,
		m.GuestName, m.RoomID, m.RoomNumber, m.CreditLimit, m.Status, m.Balance,
		m.ClosedAt, m.ClosedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError("failed to update folio "+folio.FolioID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, "folios", "folio_id", folio.FolioID)
	}
	return nil
}

// insertTransactions batches txns, numbering them from firstSeq.
func (r *PgxFolioRepository) insertTransactions(ctx context.Context, txns []domain.FolioTransaction, firstSeq int) error {
	if len(txns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, txn := range txns {
		t := mapping.ToModelFolioTransaction(txn, firstSeq+i)
		batch.Queue(`
			INSERT INTO folio_transactions (`+folioTransactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			t.TransactionID, t.FolioID, t.Seq, t.PostedAt, t.BusinessDate, t.Type, t.Category,
			t.Description, t.Debit, t.Credit, t.BalanceAfter, t.PostedBy, t.Tax, t.PaymentMethod, t.Reference, t.StayDate)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return mapError("failed to insert folio transaction", err)
		}
	}
	if err := br.Close(); err != nil {
		return mapError("failed to close folio transaction batch", err)
	}
	return nil
}

func (r *PgxFolioRepository) SaveFolio(ctx context.Context, folio *domain.Folio) error {
	if folio.Version == 0 {
		err := r.withinTx(ctx, func(ctx context.Context) error {
			if err := r.insertHeader(ctx, folio); err != nil {
				return err
			}
			return r.insertTransactions(ctx, folio.Transactions, 0)
		})
		if err != nil {
			return err
		}
		folio.Version = 1
		return nil
	}
	if err := r.updateHeader(ctx, folio); err != nil {
		return err
	}
	folio.Version++
	return nil
}

func (r *PgxFolioRepository) AppendFolioTransactions(ctx context.Context, folio *domain.Folio, txns []domain.FolioTransaction) error {
	err := r.withinTx(ctx, func(ctx context.Context) error {
		if err := r.updateHeader(ctx, folio); err != nil {
			return err
		}
		return r.insertTransactions(ctx, txns, len(folio.Transactions)-len(txns))
	})
	if err != nil {
		return err
	}
	folio.Version++
	return nil
}

func (r *PgxFolioRepository) ReplaceFolioTransactions(ctx context.Context, folio *domain.Folio) error {
	err := r.withinTx(ctx, func(ctx context.Context) error {
		if err := r.updateHeader(ctx, folio); err != nil {
			return err
		}
		if _, err := r.db(ctx).Exec(ctx, `DELETE FROM folio_transactions WHERE folio_id = $1`, folio.FolioID); err != nil {
			return mapError("failed to clear transactions for folio "+folio.FolioID, err)
		}
		return r.insertTransactions(ctx, folio.Transactions, 0)
	})
	if err != nil {
		return err
	}
	folio.Version++
	return nil
}
