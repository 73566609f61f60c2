package service

import (
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

// DomainError: ошибка бизнес-правила со статичным сообщением для клиента.
// Категория (apperrors.ErrXxx) доступна через errors.Is.
type DomainError struct {
	category error
	message  string
}

func newDomainError(category error, message string) *DomainError {
	return &DomainError{category: category, message: message}
}

func (e *DomainError) Error() string {
	return e.message
}

func (e *DomainError) Unwrap() error {
	return e.category
}

// Ошибки оценок
var (
	ErrDuplicateSubmission = newDomainError(apperrors.ErrConflict, "You have already submitted a score for this user in this competition")
	ErrInvalidTarget       = newDomainError(apperrors.ErrValidation, "You cannot score yourself")
	ErrNotAParticipant     = newDomainError(apperrors.ErrValidation, "User is not a participant of this competition")
	ErrEmptyPayload        = newDomainError(apperrors.ErrValidation, "Empty poll list")
	ErrScoreBudgetExceeded = newDomainError(apperrors.ErrValidation, "Total score must not exceed 1000")
	ErrNotAllowed          = newDomainError(apperrors.ErrForbidden, "Not allowed to score")
	ErrScoreCreateFailed   = newDomainError(apperrors.ErrInternal, "Failed to create score")
	ErrSubmissionFailed    = newDomainError(apperrors.ErrInternal, "Failed to submit scores")
)

// Ошибки соревнований и участников
var (
	ErrCompetitionNotFound = newDomainError(apperrors.ErrNotFound, "Competition not found")
	ErrNotCreator          = newDomainError(apperrors.ErrForbidden, "Only the competition creator can add participants")
	ErrUnknownUsers        = newDomainError(apperrors.ErrValidation, "Some user ids do not exist")
	ErrAlreadyParticipant  = newDomainError(apperrors.ErrConflict, "User is already a participant of this competition")
	ErrParticipantNotFound = newDomainError(apperrors.ErrNotFound, "Participant not found")
	ErrRemoveForbidden     = newDomainError(apperrors.ErrForbidden, "Only an admin or the competition creator can remove participants")
)

// Ошибки пользователей и аутентификации
var (
	ErrInvalidCredentials = newDomainError(apperrors.ErrUnauthorized, "Could not validate user.")
	ErrWrongPassword      = newDomainError(apperrors.ErrUnauthorized, "Error on password change")
	ErrUserExists         = newDomainError(apperrors.ErrConflict, "Username or email already registered")
	ErrUserNotFound       = newDomainError(apperrors.ErrNotFound, "User not found")
)
