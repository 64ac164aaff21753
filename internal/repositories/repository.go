package repositories

import "context"

// Repository aggregates the per-collection repositories behind one handle.
type Repository interface {
	User() UserRepository
	Scholarship() ScholarshipRepository
	Application() ApplicationRepository
	Review() ReviewRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
