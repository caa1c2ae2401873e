package mocks

import (
	"context"

	"croptrade/internal/domain/repository"
)

// RepoFactory is a fake repository.RepositoryFactory handing out the
// mocks it was built with.
type RepoFactory struct {
	UserRepository             *UserRepository
	AuthRepository             *AuthRepository
	RefreshTokenRepository     *RefreshTokenRepository
	RoleRepository             *RoleRepository
	ProfileRepository          *ProfileRepository
	TransporterRepository      *TransporterRepository
	CropRepository             *CropRepository
	TransportRequestRepository *TransportRequestRepository
}

// NewRepoFactory builds a factory with fresh mocks for every repository.
func NewRepoFactory() *RepoFactory {
	return &RepoFactory{
		UserRepository:             new(UserRepository),
		AuthRepository:             new(AuthRepository),
		RefreshTokenRepository:     new(RefreshTokenRepository),
		RoleRepository:             new(RoleRepository),
		ProfileRepository:          new(ProfileRepository),
		TransporterRepository:      new(TransporterRepository),
		CropRepository:             new(CropRepository),
		TransportRequestRepository: new(TransportRequestRepository),
	}
}

func (f *RepoFactory) UserRepo() repository.UserRepository { return f.UserRepository }

func (f *RepoFactory) AuthRepo() repository.AuthRepository { return f.AuthRepository }

func (f *RepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokenRepository
}

func (f *RepoFactory) RoleRepo() repository.RoleRepository { return f.RoleRepository }

func (f *RepoFactory) ProfileRepo() repository.ProfileRepository { return f.ProfileRepository }

func (f *RepoFactory) TransporterRepo() repository.TransporterRepository {
	return f.TransporterRepository
}

func (f *RepoFactory) CropRepo() repository.CropRepository { return f.CropRepository }

func (f *RepoFactory) TransportRequestRepo() repository.TransportRequestRepository {
	return f.TransportRequestRepository
}

// TransactionManager is a fake repository.TransactionManager that runs the
// callback inline against the supplied factory, without a real database.
type TransactionManager struct {
	Factory *RepoFactory
	// Err short-circuits Execute when set, simulating a failed transaction.
	Err error
}

// NewTransactionManager builds a passthrough manager over a fresh factory.
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{Factory: NewRepoFactory()}
}

func (m *TransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
