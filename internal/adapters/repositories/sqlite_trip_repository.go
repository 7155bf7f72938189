package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/divah21/spotter-backend/internal/domain"
	"github.com/divah21/spotter-backend/internal/platform/obs"
	"github.com/divah21/spotter-backend/internal/ports"
)

const dateLayout = "2006-01-02"

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Store the trip with its stops, logs, and segments in one transaction.
func (s *SqliteTripRepository) CreateTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.repo.CreateTrip")(&err)

	if s.DB == nil {
		return errors.New("trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("create trip: trip is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO trips (
		driver_name,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance,
		total_driving_time,
		estimated_days,
		route_source,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		trip.DriverName,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsed,
		trip.TotalDistance,
		trip.TotalDrivingTime,
		trip.EstimatedDays,
		string(trip.RouteSource),
		trip.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create trip: insert trips row: %w", err)
	}

	tripID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create trip: last insert id: %w", err)
	}

	stopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (
		trip_id,
		stop_order,
		type,
		name,
		location,
		duration,
		miles_from_start,
		time_label
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("create trip: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for i, stop := range trip.Stops {
		if _, err := stopStmt.ExecContext(ctx,
			tripID, i+1, string(stop.Type), stop.Name, stop.Location,
			stop.DurationHours, stop.MilesFromStart, stop.ClockLabel,
		); err != nil {
			return fmt.Errorf("create trip: insert stop #%d: %w", i+1, err)
		}
	}

	segStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO log_segments (
		log_id,
		segment_order,
		status,
		start_hour,
		duration,
		location
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("create trip: prepare segment insert: %w", err)
	}
	defer segStmt.Close()

	for _, dayLog := range trip.Logs {
		remarks, err := json.Marshal(dayLog.Remarks)
		if err != nil {
			return fmt.Errorf("create trip: encode remarks day=%d: %w", dayLog.DayNumber, err)
		}

		logRes, err := tx.ExecContext(ctx, `
		INSERT INTO eld_logs (
			trip_id,
			log_date,
			day_number,
			total_miles,
			hours_off_duty,
			hours_sleeper,
			hours_driving,
			hours_on_duty,
			remarks
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
		`,
			tripID,
			dayLog.Date.Format(dateLayout),
			dayLog.DayNumber,
			dayLog.TotalMiles,
			dayLog.Hours.OffDuty,
			dayLog.Hours.SleeperBerth,
			dayLog.Hours.Driving,
			dayLog.Hours.OnDuty,
			string(remarks),
		)
		if err != nil {
			return fmt.Errorf("create trip: insert log day=%d: %w", dayLog.DayNumber, err)
		}

		logID, err := logRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("create trip: log last insert id: %w", err)
		}

		for j, seg := range dayLog.Segments {
			if _, err := segStmt.ExecContext(ctx,
				logID, j+1, string(seg.Status), seg.StartHour, seg.DurationHours, seg.Location,
			); err != nil {
				return fmt.Errorf("create trip: insert segment day=%d #%d: %w", dayLog.DayNumber, j+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create trip: commit tx: %w", err)
	}

	trip.ID = tripID
	return nil
}

// Load one trip with its stops and logs.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, id int64) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.repo.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	trip, err := s.scanTrip(ctx, id)
	if err != nil {
		return nil, err
	}

	if trip.Stops, err = s.scanStops(ctx, id); err != nil {
		return nil, err
	}
	if trip.Logs, err = s.scanLogs(ctx, id); err != nil {
		return nil, err
	}

	return trip, nil
}

// Return trip summaries, most recent first, without stops or logs.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.repo.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		trip_id,
		driver_name,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance,
		total_driving_time,
		estimated_days,
		route_source,
		created_at
	FROM trips
	ORDER BY trip_id DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		trip, err := scanTripRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

func (s *SqliteTripRepository) scanTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	row := s.DB.QueryRowContext(ctx, `
	SELECT
		trip_id,
		driver_name,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance,
		total_driving_time,
		estimated_days,
		route_source,
		created_at
	FROM trips
	WHERE trip_id = ?;
	`, id)

	trip, err := scanTripRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return trip, nil
}

func scanTripRow(scan func(dest ...any) error) (*domain.Trip, error) {
	var trip domain.Trip
	var source, createdAt string

	err := scan(
		&trip.ID,
		&trip.DriverName,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCycleUsed,
		&trip.TotalDistance,
		&trip.TotalDrivingTime,
		&trip.EstimatedDays,
		&source,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	trip.RouteSource = domain.RouteSource(source)
	if trip.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	return &trip, nil
}

func (s *SqliteTripRepository) scanStops(ctx context.Context, tripID int64) ([]domain.Stop, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		type,
		name,
		location,
		duration,
		miles_from_start,
		time_label
	FROM stops
	WHERE trip_id = ?
	ORDER BY stop_order;
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 8)
	for rows.Next() {
		var stop domain.Stop
		var stopType string
		if err := rows.Scan(
			&stopType, &stop.Name, &stop.Location,
			&stop.DurationHours, &stop.MilesFromStart, &stop.ClockLabel,
		); err != nil {
			return nil, fmt.Errorf("get trip: scan stop row: %w", err)
		}
		stop.Type = domain.StopType(stopType)
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get trip: stop row iteration: %w", err)
	}

	return stops, nil
}

func (s *SqliteTripRepository) scanLogs(ctx context.Context, tripID int64) ([]domain.DailyLog, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		log_id,
		log_date,
		day_number,
		total_miles,
		hours_off_duty,
		hours_sleeper,
		hours_driving,
		hours_on_duty,
		remarks
	FROM eld_logs
	WHERE trip_id = ?
	ORDER BY day_number;
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip: query eld_logs table: %w", err)
	}
	defer rows.Close()

	type logRow struct {
		id  int64
		log domain.DailyLog
	}

	logRows := make([]logRow, 0, 4)
	for rows.Next() {
		var lr logRow
		var logDate, remarks string
		if err := rows.Scan(
			&lr.id, &logDate, &lr.log.DayNumber, &lr.log.TotalMiles,
			&lr.log.Hours.OffDuty, &lr.log.Hours.SleeperBerth,
			&lr.log.Hours.Driving, &lr.log.Hours.OnDuty, &remarks,
		); err != nil {
			return nil, fmt.Errorf("get trip: scan log row: %w", err)
		}

		if lr.log.Date, err = time.Parse(dateLayout, logDate); err != nil {
			return nil, fmt.Errorf("get trip: parse log_date %q: %w", logDate, err)
		}
		if err := json.Unmarshal([]byte(remarks), &lr.log.Remarks); err != nil {
			return nil, fmt.Errorf("get trip: decode remarks day=%d: %w", lr.log.DayNumber, err)
		}

		logRows = append(logRows, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get trip: log row iteration: %w", err)
	}

	logs := make([]domain.DailyLog, 0, len(logRows))
	for _, lr := range logRows {
		segments, err := s.scanSegments(ctx, lr.id)
		if err != nil {
			return nil, err
		}
		lr.log.Segments = segments
		logs = append(logs, lr.log)
	}

	return logs, nil
}

func (s *SqliteTripRepository) scanSegments(ctx context.Context, logID int64) ([]domain.DutySegment, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		status,
		start_hour,
		duration,
		location
	FROM log_segments
	WHERE log_id = ?
	ORDER BY segment_order;
	`, logID)
	if err != nil {
		return nil, fmt.Errorf("get trip: query log_segments table: %w", err)
	}
	defer rows.Close()

	segments := make([]domain.DutySegment, 0, 8)
	for rows.Next() {
		var seg domain.DutySegment
		var status string
		if err := rows.Scan(&status, &seg.StartHour, &seg.DurationHours, &seg.Location); err != nil {
			return nil, fmt.Errorf("get trip: scan segment row: %w", err)
		}
		seg.Status = domain.DutyStatus(status)
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get trip: segment row iteration: %w", err)
	}

	return segments, nil
}
