package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий расписаний доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание
func (r *Repository) Create(ctx context.Context, schedule *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekly, err := marshalWeekly(schedule.WeeklySchedule)
	if err != nil {
		return nil, err
	}
	exceptions, err := marshalExceptions(schedule.Exceptions)
	if err != nil {
		return nil, err
	}
	overrides, err := marshalOverrides(schedule.Overrides)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("availability_schedules").
		Columns(
			"staff_id",
			"weekly_schedule",
			"exceptions",
			"overrides",
			"effective_from",
			"effective_to",
		).
		Values(
			schedule.StaffID,
			weekly,
			exceptions,
			overrides,
			schedule.EffectiveFrom,
			schedule.EffectiveTo,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByID получает расписание по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - мутации списков
// исключений и переопределений идут через чтение-изменение-запись.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("availability_schedules").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	schedule, err := scanSchedule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

// GetActiveForDate получает все расписания сотрудника, активные на дату.
// Возвращает кандидатов в порядке убывания created_at; выбор одного из них -
// ответственность политики на уровне резолвера.
func (r *Repository) GetActiveForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := domain.DateOnly(date)
	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("availability_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.LtOrEq{"effective_from": day}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_to": nil},
			squirrel.GtOrEq{"effective_to": day},
		}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// GetByStaff получает все расписания сотрудника
func (r *Repository) GetByStaff(ctx context.Context, staffID int64) ([]*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("availability_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// ReplaceWeeklySchedule полностью заменяет недельный шаблон расписания
func (r *Repository) ReplaceWeeklySchedule(ctx context.Context, id int64, entries []domain.DayScheduleEntry) error {
	weekly, err := marshalWeekly(entries)
	if err != nil {
		return err
	}
	return r.updateDocument(ctx, id, "weekly_schedule", weekly, "ReplaceWeeklySchedule")
}

// ReplaceExceptions полностью заменяет список исключений расписания
func (r *Repository) ReplaceExceptions(ctx context.Context, id int64, exceptions []domain.ScheduleException) error {
	doc, err := marshalExceptions(exceptions)
	if err != nil {
		return err
	}
	return r.updateDocument(ctx, id, "exceptions", doc, "ReplaceExceptions")
}

// ReplaceOverrides полностью заменяет список переопределений расписания
func (r *Repository) ReplaceOverrides(ctx context.Context, id int64, overrides []domain.ScheduleOverride) error {
	doc, err := marshalOverrides(overrides)
	if err != nil {
		return err
	}
	return r.updateDocument(ctx, id, "overrides", doc, "ReplaceOverrides")
}

// Delete удаляет расписание (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func (r *Repository) updateDocument(ctx context.Context, id int64, column string, doc []byte, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_schedules").
		Set(column, doc).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

var scheduleColumns = []string{
	"id",
	"staff_id",
	"weekly_schedule",
	"exceptions",
	"overrides",
	"effective_from",
	"effective_to",
	"created_at",
	"updated_at",
}

// scanSchedule сканирует одну строку расписания; scan - Scan строки или rows
func scanSchedule(scan func(dest ...interface{}) error) (*domain.AvailabilitySchedule, error) {
	var schedule domain.AvailabilitySchedule
	var weekly, exceptions, overrides []byte
	var effectiveTo, createdAt, updatedAt sql.NullTime

	err := scan(
		&schedule.ID,
		&schedule.StaffID,
		&weekly,
		&exceptions,
		&overrides,
		&schedule.EffectiveFrom,
		&effectiveTo,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSchedule - scan row: %v", ErrScanRow, err)
	}

	schedule.WeeklySchedule, err = unmarshalWeekly(weekly)
	if err != nil {
		return nil, err
	}
	schedule.Exceptions, err = unmarshalExceptions(exceptions)
	if err != nil {
		return nil, err
	}
	schedule.Overrides, err = unmarshalOverrides(overrides)
	if err != nil {
		return nil, err
	}

	if effectiveTo.Valid {
		schedule.EffectiveTo = &effectiveTo.Time
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

func scanSchedules(rows *sql.Rows) ([]*domain.AvailabilitySchedule, error) {
	schedules := make([]*domain.AvailabilitySchedule, 0)

	for rows.Next() {
		schedule, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}
