package services

import (
	"github.com/okaradag/unipath/internal/app/repositories"
	"github.com/okaradag/unipath/internal/pkg/auth"
	"github.com/okaradag/unipath/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	OnboardingService  *OnboardingService
	StudentService     *StudentService
	UniversityService  *UniversityService
	ProgramService     *ProgramService
	ApplicationService *ApplicationService
	ChatService        *ChatService
}

// NewServices wires every service to its repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.TokenRepository,
			jwtService,
		),
		OnboardingService: NewOnboardingService(
			repos.StudentRepository,
			repos.UserRepository,
			repos.ExamRepository,
			repos.DocumentRepository,
			storage,
		),
		StudentService: NewStudentService(
			repos.StudentRepository,
			repos.UserRepository,
			repos.ExamRepository,
			repos.DocumentRepository,
		),
		UniversityService:  NewUniversityService(repos.UniversityRepository),
		ProgramService:     NewProgramService(repos.ProgramRepository),
		ApplicationService: NewApplicationService(repos.ApplicationRepository, repos.StudentRepository),
		ChatService:        NewChatService(repos.ChatRepository, repos.UserRepository),
	}
}
