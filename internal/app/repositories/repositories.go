package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	TokenRepository       *TokenRepository
	ExamRepository        *ExamRepository
	DocumentRepository    *DocumentRepository
	UniversityRepository  *UniversityRepository
	ProgramRepository     *ProgramRepository
	ApplicationRepository *ApplicationRepository
	ChatRepository        *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		StudentRepository:     NewStudentRepository(db),
		TokenRepository:       NewTokenRepository(db),
		ExamRepository:        NewExamRepository(db),
		DocumentRepository:    NewDocumentRepository(db),
		UniversityRepository:  NewUniversityRepository(db),
		ProgramRepository:     NewProgramRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		ChatRepository:        NewChatRepository(db),
	}
}
