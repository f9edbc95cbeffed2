// Package report queries the analytical store for daily prosthesis
// aggregates and renders them as the downloadable CSV artifact.
package report

import "time"

// Record is one aggregate row per (scope key, date), produced by the batch
// aggregation job and consumed read-only here.
type Record struct {
	ScopeKey      string    `db:"client_id"`
	Date          time.Time `db:"date"`
	AvgJointAngle float64   `db:"avg_joint_angle"`
	MaxJointAngle float64   `db:"max_joint_angle"`
	MinJointAngle float64   `db:"min_joint_angle"`
	AvgPressure   float64   `db:"avg_pressure"`
	AvgBattery    float64   `db:"avg_battery"`
	Activity      string    `db:"most_common_activity"`
}

// signals returns the five per-signal expansions of the aggregate row, in
// the fixed artifact order.
func (r Record) signals() []signal {
	return []signal{
		{"avg_joint_angle", r.AvgJointAngle},
		{"max_joint_angle", r.MaxJointAngle},
		{"min_joint_angle", r.MinJointAngle},
		{"avg_pressure", r.AvgPressure},
		{"avg_battery", r.AvgBattery},
	}
}

type signal struct {
	Type  string
	Value float64
}
