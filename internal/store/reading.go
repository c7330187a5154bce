package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/energydash/internal/model"
)

type ReadingStore struct {
	db *sql.DB
}

func NewReadingStore(db *sql.DB) *ReadingStore {
	return &ReadingStore{db: db}
}

const readingCols = `household_id, day, production_kwh, consumption_kwh`

// ListByHousehold returns the household's readings ordered by day.
func (s *ReadingStore) ListByHousehold(householdID int64) ([]model.DailyReading, error) {
	rows, err := s.db.Query(
		`SELECT `+readingCols+` FROM daily_readings WHERE household_id = ? ORDER BY day ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var readings []model.DailyReading
	for rows.Next() {
		var r model.DailyReading
		if err := rows.Scan(&r.HouseholdID, &r.Day, &r.ProductionKWh, &r.ConsumptionKWh); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// Series splits the household's readings into parallel production and
// consumption slices indexed by day order.
func (s *ReadingStore) Series(householdID int64) (production, consumption []float64, err error) {
	readings, err := s.ListByHousehold(householdID)
	if err != nil {
		return nil, nil, err
	}
	production = make([]float64, len(readings))
	consumption = make([]float64, len(readings))
	for i, r := range readings {
		production[i] = r.ProductionKWh
		consumption[i] = r.ConsumptionKWh
	}
	return production, consumption, nil
}
