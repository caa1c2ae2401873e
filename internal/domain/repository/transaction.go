package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository instance bound to the current transaction.
	UserRepo() UserRepository

	// AuthRepo returns an AuthRepository instance bound to the current transaction.
	AuthRepo() AuthRepository

	// RefreshTokenRepo returns a RefreshTokenRepository instance bound to the current transaction.
	RefreshTokenRepo() RefreshTokenRepository

	// RoleRepo returns a RoleRepository instance bound to the current transaction.
	RoleRepo() RoleRepository

	// ProfileRepo returns a ProfileRepository instance bound to the current transaction.
	ProfileRepo() ProfileRepository

	// TransporterRepo returns a TransporterRepository instance bound to the current transaction.
	TransporterRepo() TransporterRepository

	// CropRepo returns a CropRepository instance bound to the current transaction.
	CropRepo() CropRepository

	// TransportRequestRepo returns a TransportRequestRepository instance bound to the current transaction.
	TransportRequestRepo() TransportRequestRepository
}
