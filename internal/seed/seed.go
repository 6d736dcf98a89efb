package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/tutorlink/tutorlink/internal/app/models"
	appRepos "github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// CreateDefaultData seeds the default admin account, staff allow-list
// entries, time slots and subject areas when they are missing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	specialUserRepo := appRepos.NewSpecialUserRepository(dbPool)
	slotRepo := appRepos.NewSlotRepository(dbPool)
	majorRepo := appRepos.NewMajorRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default Admin User --- //
	exists, err := userRepo.EmailExists(ctx, "admin@tutorlink.io")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:     "admin@tutorlink.io",
				Password:  string(hashedPassword),
				FirstName: "Platform",
				LastName:  "Admin",
				RoleType:  appModels.RoleAdmin,
				IsActive:  true,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", admin.Email).Msg("Default admin user created")
			}
		}
	}

	// --- Staff Allow-List Entries --- //
	// Registration with one of these emails grants the listed role.
	defaultSpecialUsers := []appModels.SpecialUser{
		{Email: "staff@tutorlink.io", RoleType: appModels.RoleStaff},
		{Email: "admin@tutorlink.io", RoleType: appModels.RoleAdmin},
	}
	for _, su := range defaultSpecialUsers {
		entry := su
		if err := specialUserRepo.Create(ctx, &entry); err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("email", entry.Email).Msg("Error creating allow-list entry")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default Slots --- //
	slots, err := slotRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing slots")
		finalErr = errors.Join(finalErr, err)
	} else if len(slots) == 0 {
		defaultSlots := []appModels.Slot{
			{Name: "Morning", TimeStart: "09:00", TimeEnd: "11:00"},
			{Name: "Midday", TimeStart: "11:00", TimeEnd: "13:00"},
			{Name: "Afternoon", TimeStart: "14:00", TimeEnd: "16:00"},
			{Name: "Evening", TimeStart: "18:00", TimeEnd: "20:00"},
		}
		for _, s := range defaultSlots {
			slot := s
			if err := slotRepo.Create(ctx, &slot); err != nil {
				lgr.Error().Err(err).Str("name", slot.Name).Msg("Error creating default slot")
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Int("count", len(defaultSlots)).Msg("Default slots created")
	}

	// --- Default Majors --- //
	defaultMajors := []appModels.Major{
		{Name: "Mathematics", Description: "Algebra, calculus and statistics"},
		{Name: "Computer Science", Description: "Programming, algorithms and systems"},
		{Name: "Physics", Description: "Mechanics, electricity and modern physics"},
		{Name: "English", Description: "Grammar, writing and conversation"},
	}
	for _, m := range defaultMajors {
		major := m
		if err := majorRepo.Create(ctx, &major); err != nil && !errors.Is(err, apperrors.ErrMajorAlreadyExists) {
			lgr.Error().Err(err).Str("name", major.Name).Msg("Error creating default major")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
