package unitofwork

import (
	"context"

	"hustlee-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BookingRepository() contract.BookingRepository
	MentorProfileRepository() contract.MentorProfileRepository
}
