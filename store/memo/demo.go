package memo

import (
	"fmt"
	"time"

	nt "grille/entity"
	"grille/field"
)

var (
	demoHosts  = []string{"alpha", "bravo", "charlie", "delta"}
	demoLevels = []string{"debug", "info", "warn", "error"}
	demoMsgs   = []string{
		"request served",
		"cache miss",
		"retrying upstream",
		"connection reset",
		"config reloaded",
	}
	demoStart = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
)

// DemoColumns declares a nested column tree matching DemoRows.
func DemoColumns() []field.Def {

	ts := field.Column("ts", "Time")
	ts.Format = "15:04:05"
	ts.Sort = nt.Asc

	return []field.Def{
		field.Column("id", "Id"),
		field.Set("event", "Event",
			ts,
			field.Column("level", "Level"),
			field.Column("msg", "Message"),
		),
		field.Set("source", "Source",
			field.Column("host", "Host"),
			field.Set("request", "Request",
				field.Column("status", "Status"),
				field.Column("elapsed", "Elapsed ms"),
			),
		),
	}
}

// DemoRows generates count rows of log-like data. The same count always gives
// the same rows.
func DemoRows(count int) (rows []nt.RowData) {

	rows = make([]nt.RowData, count)
	for i := range rows {
		level := demoLevels[(i*7)%len(demoLevels)]
		rows[i] = nt.RowData{
			Id: fmt.Sprintf("%d", i+1),
			Values: map[string]nt.Value{
				"id":      {Raw: int64(i + 1)},
				"ts":      {Raw: demoStart.Add(time.Duration(i*37) * time.Second)},
				"level":   {Raw: level},
				"msg":     {Raw: demoMsgs[(i*3)%len(demoMsgs)]},
				"host":    {Raw: demoHosts[i%len(demoHosts)]},
				"status":  {Raw: int64(200 + 100*((i*5)%4))},
				"elapsed": {Raw: float64((i*131)%997) / 10},
			},
			Props: nt.RowProps{
				Muted:  level == "debug",
				Marked: level == "error",
			},
		}
	}
	return
}
