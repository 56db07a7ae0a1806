package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/okaradag/unipath/internal/app/models"
	appRepos "github.com/okaradag/unipath/internal/app/repositories"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

// documentTypeNames are the document categories onboarding relies on.
// SeedTypes is idempotent, so reseeding on every boot is safe.
var documentTypeNames = []string{
	appModels.DocTypePassportPhoto,
	appModels.DocTypeTranscript,
	appModels.DocTypeDiploma,
	appModels.DocTypeGradeCertificate,
	appModels.DocTypeOther,
	appModels.DocTypeRegistryExtract,
}

// CreateDefaultData seeds document types, a starter university catalog
// and a demo agent account.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	documentRepo := appRepos.NewDocumentRepository(dbPool)
	universityRepo := appRepos.NewUniversityRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := documentRepo.SeedTypes(ctx, documentTypeNames); err != nil {
		lgr.Error().Err(err).Msg("Error seeding document types")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedCatalog(ctx, universityRepo, programRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedDemoAgent(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

type seedProgram struct {
	name     string
	degree   string
	language string
	years    int
}

type seedUniversity struct {
	name     string
	country  string
	city     string
	programs []seedProgram
}

var starterCatalog = []seedUniversity{
	{
		name: "Technical University of Munich", country: "Germany", city: "Munich",
		programs: []seedProgram{
			{name: "Computer Science", degree: "BSc", language: "English", years: 3},
			{name: "Mechanical Engineering", degree: "MSc", language: "English", years: 2},
		},
	},
	{
		name: "University of Amsterdam", country: "Netherlands", city: "Amsterdam",
		programs: []seedProgram{
			{name: "Business Administration", degree: "BSc", language: "English", years: 3},
			{name: "Artificial Intelligence", degree: "MSc", language: "English", years: 2},
		},
	},
	{
		name: "Sabanci University", country: "Turkey", city: "Istanbul",
		programs: []seedProgram{
			{name: "Industrial Engineering", degree: "BSc", language: "English", years: 4},
		},
	},
}

// seedCatalog creates starter universities and programs if they don't exist
func seedCatalog(ctx context.Context, universityRepo *appRepos.UniversityRepository, programRepo *appRepos.ProgramRepository, lgr zerolog.Logger) error {
	var finalErr error

	for _, uni := range starterCatalog {
		university := &appModels.University{Name: uni.name, Country: uni.country, City: uni.city}
		universityID, err := universityRepo.Create(ctx, university)
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			existing, errGet := universityRepo.GetByName(ctx, uni.name)
			if errGet != nil {
				lgr.Error().Err(errGet).Str("university", uni.name).Msg("Error resolving existing university")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			universityID = existing.ID
		} else if err != nil {
			lgr.Error().Err(err).Str("university", uni.name).Msg("Error creating university")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, prog := range uni.programs {
			program := &appModels.Program{
				UniversityID: universityID,
				Name:         prog.name,
				Degree:       prog.degree,
				Language:     prog.language,
				DurationYrs:  prog.years,
			}
			if _, err := programRepo.Create(ctx, program); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				lgr.Error().Err(err).Str("program", prog.name).Msg("Error creating program")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	return finalErr
}

// seedDemoAgent creates a demo agent account students can chat with
func seedDemoAgent(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("agent1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	agent := &appModels.User{
		Email:     "agent@unipath.app",
		Password:  string(hash),
		FirstName: "Demo",
		LastName:  "Agent",
		RoleType:  appModels.RoleAgent,
		IsActive:  true,
	}

	if _, err := userRepo.Create(ctx, agent); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating demo agent")
		return err
	}

	lgr.Info().Str("email", agent.Email).Msg("Demo agent created")
	return nil
}
