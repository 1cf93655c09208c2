package pattern

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

const tableName = "recurrence_patterns"

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает повторяющийся паттерн
func (r *Repository) Create(ctx context.Context, p *domain.RecurrencePattern) (*domain.RecurrencePattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	idsJSON, err := json.Marshal(p.GeneratedBookingIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal generated_booking_ids: %v", ErrEncodeDocument, err)
	}

	query := psqlbuilder.Insert(tableName).
		Columns(
			"client_id", "staff_id", "service_id",
			"frequency", "repeat_interval", "day_of_week", "day_of_month",
			"start_time", "duration_minutes", "time_zone",
			"start_date", "end_date", "occurrence_limit",
			"generated_booking_ids", "status", "payment_plan",
		).
		Values(
			p.ClientID, p.StaffID, p.ServiceID,
			string(p.Frequency), p.Interval, p.DayOfWeek, p.DayOfMonth,
			p.StartTime, p.DurationMinutes, p.TimeZone,
			p.StartDate, p.EndDate, p.OccurrenceLimit,
			idsJSON, string(p.Status), string(p.PaymentPlan),
		).
		Suffix("RETURNING id, created_at, updated_at")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, sqlQuery, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - exec query: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает паттерн по ID
// В транзакции блокирует строку через FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurrencePattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := psqlbuilder.Select(patternColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		query = query.Suffix("FOR UPDATE")
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, sqlQuery, args...)

	p, err := scanPattern(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPatternNotFound
		}
		return nil, err
	}

	return p, nil
}

// GetByClient получает паттерны клиента, опционально фильтруя по статусу
func (r *Repository) GetByClient(ctx context.Context, clientID int64, status *domain.PatternStatus) ([]*domain.RecurrencePattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := psqlbuilder.Select(patternColumns...).
		From(tableName).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC")

	if status != nil {
		query = query.Where(squirrel.Eq{"status": string(*status)})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - exec query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPatterns(rows)
}

// ListActive получает все активные паттерны. Используется воркером материализации
func (r *Repository) ListActive(ctx context.Context) ([]*domain.RecurrencePattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := psqlbuilder.Select(patternColumns...).
		From(tableName).
		Where(squirrel.Eq{"status": string(domain.PatternStatusActive)}).
		OrderBy("id ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - exec query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPatterns(rows)
}

// UpdateStatus изменяет статус паттерна
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PatternStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - exec query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPatternNotFound
	}

	return nil
}

// CancelWithEndDate отменяет паттерн и фиксирует дату завершения серии
func (r *Repository) CancelWithEndDate(ctx context.Context, id int64, endDate time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := psqlbuilder.Update(tableName).
		Set("status", string(domain.PatternStatusCancelled)).
		Set("end_date", endDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CancelWithEndDate - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelWithEndDate - exec query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelWithEndDate - rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPatternNotFound
	}

	return nil
}

// AppendGeneratedBooking атомарно добавляет ID бронирования в список паттерна.
// Запись проходит только если длина списка не изменилась с момента чтения
// (expectedCount). Иначе возвращается ErrConcurrentAppend и вызывающий
// перечитывает паттерн и повторяет попытку.
func (r *Repository) AppendGeneratedBooking(ctx context.Context, id int64, bookingID int64, expectedCount int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bookingJSON, err := json.Marshal(bookingID)
	if err != nil {
		return fmt.Errorf("%w: AppendGeneratedBooking - marshal booking id: %v", ErrEncodeDocument, err)
	}

	query := psqlbuilder.Update(tableName).
		Set("generated_booking_ids", squirrel.Expr("generated_booking_ids || ?::jsonb", bookingJSON)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("jsonb_array_length(generated_booking_ids) = ?", expectedCount))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendGeneratedBooking - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: AppendGeneratedBooking - exec query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AppendGeneratedBooking - rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConcurrentAppend
	}

	return nil
}

var patternColumns = []string{
	"id", "client_id", "staff_id", "service_id",
	"frequency", "repeat_interval", "day_of_week", "day_of_month",
	"start_time", "duration_minutes", "time_zone",
	"start_date", "end_date", "occurrence_limit",
	"generated_booking_ids", "status", "payment_plan",
	"created_at", "updated_at",
}

func scanPattern(scan func(dest ...interface{}) error) (*domain.RecurrencePattern, error) {
	var (
		p          domain.RecurrencePattern
		frequency  string
		status     string
		payment    string
		startTime  types.TimeString
		dayOfWeek  sql.NullInt64
		dayOfMonth sql.NullInt64
		endDate    sql.NullTime
		limit      sql.NullInt64
		idsJSON    []byte
	)

	err := scan(
		&p.ID, &p.ClientID, &p.StaffID, &p.ServiceID,
		&frequency, &p.Interval, &dayOfWeek, &dayOfMonth,
		&startTime, &p.DurationMinutes, &p.TimeZone,
		&p.StartDate, &endDate, &limit,
		&idsJSON, &status, &payment,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanPattern: %v", ErrScanRow, err)
	}

	p.Frequency = domain.Frequency(frequency)
	p.Status = domain.PatternStatus(status)
	p.PaymentPlan = domain.PaymentPlan(payment)
	p.StartTime = startTime

	if dayOfWeek.Valid {
		v := int(dayOfWeek.Int64)
		p.DayOfWeek = &v
	}
	if dayOfMonth.Valid {
		v := int(dayOfMonth.Int64)
		p.DayOfMonth = &v
	}
	if endDate.Valid {
		p.EndDate = &endDate.Time
	}
	if limit.Valid {
		v := int(limit.Int64)
		p.OccurrenceLimit = &v
	}

	if len(idsJSON) > 0 {
		if err := json.Unmarshal(idsJSON, &p.GeneratedBookingIDs); err != nil {
			return nil, fmt.Errorf("%w: scanPattern - generated_booking_ids: %v", ErrDecodeDocument, err)
		}
	}
	if p.GeneratedBookingIDs == nil {
		p.GeneratedBookingIDs = []int64{}
	}

	return &p, nil
}

func scanPatterns(rows *sql.Rows) ([]*domain.RecurrencePattern, error) {
	patterns := make([]*domain.RecurrencePattern, 0)

	for rows.Next() {
		p, err := scanPattern(rows.Scan)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPatterns - rows iteration: %v", ErrScanRow, err)
	}

	return patterns, nil
}
