package services

import (
	"context"
	"sort"
	"strings"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	users        *mockUserRepo
	scholarships *mockScholarshipRepo
	applications *mockApplicationRepo
	reviews      *mockReviewRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:        &mockUserRepo{byEmail: map[string]*models.User{}},
		scholarships: &mockScholarshipRepo{byID: map[uint]*models.Scholarship{}},
		applications: &mockApplicationRepo{byID: map[uint]*models.Application{}},
		reviews:      &mockReviewRepo{byID: map[uint]*models.Review{}},
	}
}

func (m *mockRepository) User() repositories.UserRepository               { return m.users }
func (m *mockRepository) Scholarship() repositories.ScholarshipRepository { return m.scholarships }
func (m *mockRepository) Application() repositories.ApplicationRepository { return m.applications }
func (m *mockRepository) Review() repositories.ReviewRepository           { return m.reviews }
func (m *mockRepository) Ping(ctx context.Context) error                  { return nil }
func (m *mockRepository) Close() error                                    { return nil }

// ===== users =====

type mockUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *mockUserRepo) Create(_ context.Context, user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *mockUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockUserRepo) UpdateRole(_ context.Context, email string, role models.UserRole) error {
	user, ok := r.byEmail[email]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Role = role
	return nil
}

func (r *mockUserRepo) DeleteByEmail(_ context.Context, email string) error {
	if _, ok := r.byEmail[email]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byEmail, email)
	return nil
}

// ===== scholarships =====

type mockScholarshipRepo struct {
	byID   map[uint]*models.Scholarship
	nextID uint
}

func (r *mockScholarshipRepo) GetByID(_ context.Context, id uint) (*models.Scholarship, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *mockScholarshipRepo) List(_ context.Context, filters repositories.ScholarshipFilters) ([]*models.Scholarship, int64, error) {
	matched := make([]*models.Scholarship, 0, len(r.byID))
	for _, s := range r.byID {
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(s.ScholarshipName), needle) &&
				!strings.Contains(strings.ToLower(s.UniversityName), needle) &&
				!strings.Contains(strings.ToLower(s.Degree), needle) {
				continue
			}
		}
		if filters.Country != "" && s.UniversityCountry != filters.Country {
			continue
		}
		if filters.Category != "" && s.ScholarshipCategory != filters.Category {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	offset := (filters.Page - 1) * filters.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filters.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *mockScholarshipRepo) ListAll(_ context.Context) ([]*models.Scholarship, error) {
	out := make([]*models.Scholarship, 0, len(r.byID))
	for _, s := range r.byID {
		clone := *s
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockScholarshipRepo) Create(_ context.Context, s *models.Scholarship) error {
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *mockScholarshipRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	s, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if name, ok := fields["scholarship_name"].(string); ok {
		s.ScholarshipName = name
	}
	return nil
}

func (r *mockScholarshipRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ===== applications =====

type mockApplicationRepo struct {
	byID   map[uint]*models.Application
	nextID uint
}

func (r *mockApplicationRepo) GetByID(_ context.Context, id uint) (*models.Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *mockApplicationRepo) ListAll(_ context.Context) ([]*models.Application, error) {
	out := make([]*models.Application, 0, len(r.byID))
	for _, a := range r.byID {
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockApplicationRepo) ListByUserEmail(_ context.Context, email string) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range r.byID {
		if a.UserEmail == email {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockApplicationRepo) Create(_ context.Context, a *models.Application) error {
	r.nextID++
	a.ID = r.nextID
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *mockApplicationRepo) UpdateStatus(_ context.Context, id uint, status models.ApplicationStatus) error {
	a, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *mockApplicationRepo) UpdateFeedback(_ context.Context, id uint, feedback string) error {
	a, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Feedback = &feedback
	return nil
}

func (r *mockApplicationRepo) UpdatePaymentStatus(_ context.Context, id uint, status models.PaymentStatus) error {
	a, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.PaymentStatus = status
	return nil
}

func (r *mockApplicationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ===== reviews =====

type mockReviewRepo struct {
	byID   map[uint]*models.Review
	nextID uint
}

func (r *mockReviewRepo) GetByID(_ context.Context, id uint) (*models.Review, error) {
	rev, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *rev
	return &clone, nil
}

func (r *mockReviewRepo) ListAll(_ context.Context) ([]*models.Review, error) {
	out := make([]*models.Review, 0, len(r.byID))
	for _, rev := range r.byID {
		clone := *rev
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockReviewRepo) ListByScholarshipID(_ context.Context, scholarshipID uint) ([]*models.Review, error) {
	var out []*models.Review
	for _, rev := range r.byID {
		if rev.ScholarshipID == scholarshipID {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *mockReviewRepo) ListByUserEmail(_ context.Context, email string) ([]*models.Review, error) {
	var out []*models.Review
	for _, rev := range r.byID {
		if rev.UserEmail == email {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *mockReviewRepo) Create(_ context.Context, rev *models.Review) error {
	r.nextID++
	rev.ID = r.nextID
	clone := *rev
	r.byID[rev.ID] = &clone
	return nil
}

func (r *mockReviewRepo) Update(_ context.Context, id uint, ratingPoint float64, comment string) error {
	rev, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	rev.RatingPoint = ratingPoint
	rev.ReviewComment = comment
	return nil
}

func (r *mockReviewRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
