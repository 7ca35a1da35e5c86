package tracker

import "errors"

var (
	errSessionActive = errors.New(
		"a session is already active: end it before starting another",
	)

	errNoSession = errors.New("no active session: start one first")

	errAlreadyPaused = errors.New("the session is already paused")

	errNotPaused = errors.New("the session is not paused")

	errUnknownProfile = errors.New("no profile with that name exists")
)
