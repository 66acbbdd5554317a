package service

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrQueryFailed      = errors.New("query failed")
)

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrPhotoNotFound    = fmt.Errorf("photo %w", ErrNotFound)
	ErrVisitorNotFound  = fmt.Errorf("visitor %w", ErrNotFound)
	ErrJudgeNotFound    = fmt.Errorf("judge %w", ErrNotFound)
	ErrWinnerNotFound   = fmt.Errorf("winner %w", ErrNotFound)
	ErrAlreadyScored    = fmt.Errorf("%w: photo already scored by this judge", ErrConflict)
	ErrAlreadyVoted     = fmt.Errorf("%w: photo already voted by this visitor", ErrConflict)
	ErrScoreOutOfRange  = fmt.Errorf("%w: score must be between 0 and 10", ErrInvalidInput)
	ErrScoreMissing     = fmt.Errorf("%w: score is required", ErrInvalidInput)
)
