package service

import (
	"context"
	"sort"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/repository/contract"
	"hustlee-be/internal/repository/specification"
	"hustlee-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories interpreting the same specifications as the GORM
// implementations. Reads hand out copies so a mutated entity only lands in the
// store through an explicit Update.

type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	bookings map[uuid.UUID]*entity.Booking
	profiles map[uuid.UUID]*entity.MentorProfile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		bookings: make(map[uuid.UUID]*entity.Booking),
		profiles: make(map[uuid.UUID]*entity.MentorProfile),
	}
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.Feedback != nil {
		f := *b.Feedback
		c.Feedback = &f
	}
	if b.Cancellation != nil {
		cc := *b.Cancellation
		c.Cancellation = &cc
	}
	c.Agenda = append([]string(nil), b.Agenda...)
	c.Attachments = append([]entity.Attachment(nil), b.Attachments...)
	return &c
}

func cloneProfile(p *entity.MentorProfile) *entity.MentorProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Availability = append([]entity.AvailabilityWindow(nil), p.Availability...)
	c.Expertise = append([]string(nil), p.Expertise...)
	c.Languages = append([]string(nil), p.Languages...)
	return &c
}

func bookingMatches(b *entity.Booking, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return b.Id == s.ID
	case specification.MentorIs:
		return b.MentorId == s.MentorID
	case specification.StudentIs:
		return b.StudentId == s.StudentID
	case specification.ParticipantIs:
		return b.MentorId == s.UserID || b.StudentId == s.UserID
	case specification.StatusNot:
		return string(b.Status) != s.Status
	case specification.OverlappingRange:
		return b.StartTime.Before(s.End) && b.EndTime.After(s.Start)
	case specification.ExcludeID:
		return b.Id != s.ID
	case specification.HasFeedback:
		return b.Feedback != nil
	case specification.OriginIs:
		return string(b.Origin) == s.Origin
	case specification.StartingAfter:
		return !b.StartTime.Before(s.At)
	default:
		return true
	}
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) filter(specs []specification.Specification) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.store.bookings {
		ok := true
		for _, spec := range specs {
			switch spec.(type) {
			case specification.OrderBy, specification.Pagination:
				continue
			}
			if !bookingMatches(b, spec) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, cloneBooking(b))
		}
	}
	return out
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.store.bookings[booking.Id] = cloneBooking(booking)
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	r.store.bookings[booking.Id] = cloneBooking(booking)
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.bookings, id)
	return nil
}

func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	matches := r.filter(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	matches := r.filter(specs)

	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok && o.Field == "start_time" {
			sort.Slice(matches, func(i, j int) bool {
				if o.Desc {
					return matches[i].StartTime.After(matches[j].StartTime)
				}
				return matches[i].StartTime.Before(matches[j].StartTime)
			})
		}
	}
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset >= len(matches) {
				return nil, nil
			}
			matches = matches[p.Offset:]
			if p.Limit < len(matches) {
				matches = matches[:p.Limit]
			}
		}
	}
	return matches, nil
}

func (r *fakeBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) userMatches(u *entity.User, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return u.Id == s.ID
	case specification.ByEmail:
		return u.Email == s.Email
	case specification.ByRole:
		return string(u.Role) == s.Role
	default:
		return true
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	c := *user
	r.store.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	c := *user
	r.store.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		ok := true
		for _, spec := range specs {
			if !r.userMatches(u, spec) {
				ok = false
				break
			}
		}
		if ok {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		ok := true
		for _, spec := range specs {
			if !r.userMatches(u, spec) {
				ok = false
				break
			}
		}
		if ok {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ActivateUser(_ context.Context, id uuid.UUID) error {
	if u, ok := r.store.users[id]; ok {
		u.Status = entity.UserStatusActive
		u.EmailVerified = true
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if u, ok := r.store.users[id]; ok {
		u.PasswordHash = &passwordHash
	}
	return nil
}

func (r *fakeUserRepo) CreateEmailVerificationToken(context.Context, *entity.EmailVerificationToken) error {
	return nil
}

func (r *fakeUserRepo) FindEmailVerificationToken(context.Context, ...specification.Specification) (*entity.EmailVerificationToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) DeleteEmailVerificationToken(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreatePasswordResetToken(context.Context, *entity.PasswordResetToken) error {
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(context.Context, ...specification.Specification) (*entity.PasswordResetToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) MarkTokenUsed(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreateRefreshToken(context.Context, *entity.UserRefreshToken) error {
	return nil
}

func (r *fakeUserRepo) RevokeRefreshToken(context.Context, string) error { return nil }

func (r *fakeUserRepo) CreateProvider(context.Context, *entity.UserProvider) error { return nil }

func (r *fakeUserRepo) FindProvider(context.Context, string, string) (*entity.UserProvider, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	store *fakeStore
}

func (r *fakeProfileRepo) profileMatches(p *entity.MentorProfile, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return p.Id == s.ID
	case specification.UserOwnedBy:
		return p.UserId == s.UserID
	case specification.FilterBy:
		if s.Field == "active" {
			want, _ := s.Value.(bool)
			return p.Active == want
		}
		return true
	default:
		return true
	}
}

func (r *fakeProfileRepo) filter(specs []specification.Specification) []*entity.MentorProfile {
	var out []*entity.MentorProfile
	for _, p := range r.store.profiles {
		ok := true
		for _, spec := range specs {
			switch spec.(type) {
			case specification.OrderBy, specification.Pagination:
				continue
			}
			if !r.profileMatches(p, spec) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, cloneProfile(p))
		}
	}
	return out
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.MentorProfile) error {
	r.store.profiles[profile.Id] = cloneProfile(profile)
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entity.MentorProfile) error {
	existing, ok := r.store.profiles[profile.Id]
	clone := cloneProfile(profile)
	if ok {
		// Availability is managed through ReplaceAvailability only.
		clone.Availability = existing.Availability
	}
	r.store.profiles[profile.Id] = clone
	return nil
}

func (r *fakeProfileRepo) ReplaceAvailability(_ context.Context, profileId uuid.UUID, windows []entity.AvailabilityWindow) error {
	if p, ok := r.store.profiles[profileId]; ok {
		p.Availability = append([]entity.AvailabilityWindow(nil), windows...)
	}
	return nil
}

func (r *fakeProfileRepo) UpdateRating(_ context.Context, profileId uuid.UUID, rating float64, count int) error {
	if p, ok := r.store.profiles[profileId]; ok {
		p.Rating = rating
		p.RatingCount = count
	}
	return nil
}

func (r *fakeProfileRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.MentorProfile, error) {
	matches := r.filter(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeProfileRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.MentorProfile, error) {
	matches := r.filter(specs)

	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok && o.Field == "rating" {
			sort.Slice(matches, func(i, j int) bool {
				if o.Desc {
					return matches[i].Rating > matches[j].Rating
				}
				return matches[i].Rating < matches[j].Rating
			})
		}
	}
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset >= len(matches) {
				return nil, nil
			}
			matches = matches[p.Offset:]
			if p.Limit < len(matches) {
				matches = matches[:p.Limit]
			}
		}
	}
	return matches, nil
}

func (r *fakeProfileRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

type fakeUnitOfWork struct {
	store    *fakeStore
	begun    int
	commits  int
	rollback int
}

func (u *fakeUnitOfWork) Begin(context.Context) error { u.begun++; return nil }
func (u *fakeUnitOfWork) Commit() error               { u.commits++; return nil }
func (u *fakeUnitOfWork) Rollback() error             { u.rollback++; return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) BookingRepository() contract.BookingRepository {
	return &fakeBookingRepo{store: u.store}
}

func (u *fakeUnitOfWork) MentorProfileRepository() contract.MentorProfileRepository {
	return &fakeProfileRepo{store: u.store}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}
