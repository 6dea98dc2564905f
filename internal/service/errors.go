package service

import "errors"

// Sentinel errors surfaced to handlers for status mapping.
var (
	ErrStudentNotFound           = errors.New("student not found")
	ErrTeacherNotFound           = errors.New("teacher not found")
	ErrNominationNotFound        = errors.New("nomination not found")
	ErrNominationAlreadyReviewed = errors.New("nomination already reviewed")
	ErrPlannerItemNotFound       = errors.New("planner item not found")
	ErrRewardNotFound            = errors.New("custom reward not found")
	ErrRewardIDTaken             = errors.New("reward id already in use")
	ErrAchievementUnknown        = errors.New("unknown achievement")
	ErrAchievementLocked         = errors.New("achievement not unlocked")
	ErrAlreadyClaimed            = errors.New("achievement already claimed")
	ErrUnknownValue              = errors.New("unknown core value")
	ErrUnknownSubject            = errors.New("unknown subject")
	ErrUnknownDimension          = errors.New("unknown leaderboard dimension")
)
