package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

// FilterConfig represents a configuration to filter sessions in the
// database by their start time, end time, and profile.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Profile   string
}

// getTimeRange returns the start and end time according to the
// specified time period.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// parseNaturalDate resolves date expressions such as '2 weeks ago' or
// 'last monday' in addition to ordinary dates.
func parseNaturalDate(input string) (time.Time, error) {
	dt, err := dateparser.Parse(&dateparser.Configuration{
		CurrentTime: time.Now(),
	}, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", errInvalidDate, input)
	}

	return dt.Time, nil
}

// setFilterConfig updates the filter configuration from command-line
// arguments. Without any time constraints, the filter spans all time up
// to the end of today.
func setFilterConfig(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{
		Profile: strings.TrimSpace(ctx.String("profile")),
	}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	since := ctx.String("since")
	if since != "" {
		dateTime, err := parseNaturalDate(since)
		if err != nil {
			return nil, err
		}

		filterCfg.StartTime = dateTime
	}

	filterCfg.EndTime = timeutil.RoundToEnd(time.Now())

	until := ctx.String("until")
	if until != "" {
		dateTime, err := parseNaturalDate(until)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = dateTime
	}

	if int(filterCfg.EndTime.Sub(filterCfg.StartTime).Seconds()) < 0 {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter sessions from
// command-line arguments.
func Filter(ctx *cli.Context) *FilterConfig {
	cfg, err := setFilterConfig(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}
