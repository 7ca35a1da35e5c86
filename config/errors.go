package config

import "errors"

var (
	errInitFailed = errors.New(
		"Unable to initialise studytrack settings from the configuration file",
	)

	errInvalidDateRange = errors.New(
		"the end date must not be earlier than the start date",
	)

	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)

	errInvalidDate = errors.New(
		"please provide a valid date",
	)
)
