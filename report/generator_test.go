package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prosthetix/reports-platform/identity"
	"github.com/prosthetix/reports-platform/report"
	"github.com/stretchr/testify/require"
)

func aggregateRow(scopeKey string, date time.Time) report.Record {
	return report.Record{
		ScopeKey:      scopeKey,
		Date:          date,
		AvgJointAngle: 10.0,
		MaxJointAngle: 20.0,
		MinJointAngle: 5.0,
		AvgPressure:   1.5,
		AvgBattery:    90.0,
		Activity:      "walking",
	}
}

func TestGenerate_SingleRow(t *testing.T) {
	id := identity.Identity{
		Username:   "prothetic2",
		Email:      "prothetic2@example.com",
		GivenName:  "Pro",
		FamilyName: "Thetic",
	}
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	artifact, err := report.Generate(id, []report.Record{aggregateRow("CLI004", date)})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(artifact), "\n"), "\n")
	require.Len(t, lines, 6, "one header plus five signal lines")
	require.Equal(t, "User ID,User Name,Email,Prosthesis Type,Signal Type,Signal Value,Timestamp,Usage Hours,Battery Level,Created Date", lines[0])

	require.Equal(t, "CLI004,Pro Thetic,prothetic2@example.com,arm_prosthesis,avg_joint_angle,10.0,2024-01-01T00:00:00,24.0,90.0,2024-01-01", lines[1])

	for _, line := range lines[1:] {
		require.Contains(t, line, ",90.0,", "battery level column")
		require.True(t, strings.HasSuffix(line, "2024-01-01"), "created date column")
	}

	signalOrder := []string{"avg_joint_angle", "max_joint_angle", "min_joint_angle", "avg_pressure", "avg_battery"}
	for i, sig := range signalOrder {
		require.Contains(t, lines[i+1], ","+sig+",")
	}
}

func TestGenerate_FiveRowsYieldTwentyFiveLines(t *testing.T) {
	id := identity.Identity{Username: "prothetic2"}

	var records []report.Record
	for day := 1; day <= 5; day++ {
		records = append(records, aggregateRow("CLI004", time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)))
	}

	artifact, err := report.Generate(id, records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(artifact), "\n"), "\n")
	require.Len(t, lines, 26, "header plus 5 signals x 5 rows")
}

func TestGenerate_IdentityFallbacks(t *testing.T) {
	t.Run("name falls back to username", func(t *testing.T) {
		id := identity.Identity{Username: "prothetic9"}
		artifact, err := report.Generate(id, []report.Record{aggregateRow("CLI003", time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))})
		require.NoError(t, err)
		require.Contains(t, string(artifact), "CLI003,prothetic9,prothetic9@example.com,")
	})

	t.Run("empty records render only the header", func(t *testing.T) {
		artifact, err := report.Generate(identity.Identity{Username: "u"}, nil)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(artifact), "\n"), "\n")
		require.Len(t, lines, 1)
	})
}
