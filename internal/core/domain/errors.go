package domain

import "errors"

var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrLogoNotFound        = errors.New("logo item not found")
	ErrInvalidActivityID   = errors.New("invalid activity id")

	// ErrInvalidConfig is returned when an activity config does not match
	// the declared activity type.
	ErrInvalidConfig = errors.New("config does not match activity type")

	// ErrUnauthorized is returned when a participant belongs to a different
	// event than the activity.
	ErrUnauthorized = errors.New("participant does not belong to this event")

	// ErrNotLive rejects gameplay against an activity that is not running.
	// ErrActivityEnded rejects mutations of a terminal activity; the two are
	// distinct because a Draft activity is not live but can still be edited.
	ErrNotLive       = errors.New("activity is not live")
	ErrActivityEnded = errors.New("activity has ended")

	ErrAlreadyVoted           = errors.New("participant has already voted")
	ErrSubmissionLimitReached = errors.New("submission limit reached")
	ErrStaleRound             = errors.New("guess targets a round that is no longer current")
	ErrMaxAttemptsReached     = errors.New("no attempts remaining for this logo")
	ErrAlreadySolved          = errors.New("logo already solved")

	ErrInvalidInput = errors.New("invalid input")
)
