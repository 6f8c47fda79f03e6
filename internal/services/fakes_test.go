package services

import (
	"errors"
	"time"

	"landmarket_backend/internal/email"
	"landmarket_backend/internal/models"
	"landmarket_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Репозитории stateless и принимают *gorm.DB параметром, поэтому
// сервисы тестируются на in-memory фейках с nil вместо БД.

type fakeAccountRepo struct {
	accounts map[string]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.Account)}
}

func (r *fakeAccountRepo) Create(_ *gorm.DB, account *models.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return repositories.ErrEmailTaken
		}
		if existing.Username == account.Username {
			return repositories.ErrUsernameTaken
		}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(_ *gorm.DB, id string) (*models.Account, error) {
	if account, ok := r.accounts[id]; ok {
		return account, nil
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByEmail(_ *gorm.DB, email string) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByVerificationToken(_ *gorm.DB, token string) (*models.Account, error) {
	if token == "" {
		return nil, repositories.ErrAccountNotFound
	}
	for _, account := range r.accounts {
		if account.VerificationToken == token {
			return account, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) UpdateVerificationToken(_ *gorm.DB, accountID, token string) error {
	account, ok := r.accounts[accountID]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.VerificationToken = token
	return nil
}

func (r *fakeAccountRepo) MarkVerified(_ *gorm.DB, accountID string) error {
	account, ok := r.accounts[accountID]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.IsVerified = true
	return nil
}

func (r *fakeAccountRepo) UpdatePassword(_ *gorm.DB, accountID, passwordHash string) error {
	account, ok := r.accounts[accountID]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	return nil
}

func (r *fakeAccountRepo) Delete(_ *gorm.DB, accountID string) error {
	if _, ok := r.accounts[accountID]; !ok {
		return repositories.ErrAccountNotFound
	}
	delete(r.accounts, accountID)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session // token -> session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ *gorm.DB, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	r.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) FindByToken(_ *gorm.DB, token string) (*models.Session, error) {
	if session, ok := r.sessions[token]; ok {
		return session, nil
	}
	return nil, repositories.ErrSessionNotFound
}

func (r *fakeSessionRepo) FindActiveByAccount(_ *gorm.DB, accountID string, now time.Time) (*models.Session, error) {
	for _, session := range r.sessions {
		if session.AccountID == accountID && session.ExpiresAt.After(now) {
			return session, nil
		}
	}
	return nil, repositories.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeleteByToken(_ *gorm.DB, token string) error {
	if _, ok := r.sessions[token]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteByAccountID(_ *gorm.DB, accountID string) error {
	for token, session := range r.sessions {
		if session.AccountID == accountID {
			delete(r.sessions, token)
		}
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile           // accountID -> profile
	links    map[string][]*models.SocialLink      // accountID -> links
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*models.Profile),
		links:    make(map[string][]*models.SocialLink),
	}
}

func (r *fakeProfileRepo) Create(_ *gorm.DB, profile *models.Profile) error {
	if _, ok := r.profiles[profile.AccountID]; ok {
		return repositories.ErrProfileExists
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.profiles[profile.AccountID] = profile
	return nil
}

func (r *fakeProfileRepo) FindByAccountID(_ *gorm.DB, accountID string) (*models.Profile, error) {
	if profile, ok := r.profiles[accountID]; ok {
		return profile, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) Update(_ *gorm.DB, profile *models.Profile) error {
	if _, ok := r.profiles[profile.AccountID]; !ok {
		return repositories.ErrProfileNotFound
	}
	r.profiles[profile.AccountID] = profile
	return nil
}

func (r *fakeProfileRepo) Delete(_ *gorm.DB, profile *models.Profile) error {
	delete(r.profiles, profile.AccountID)
	delete(r.links, profile.AccountID)
	return nil
}

func (r *fakeProfileRepo) UpdateAverageRating(_ *gorm.DB, accountID string, average float64) error {
	profile, ok := r.profiles[accountID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	profile.AverageRating = average
	return nil
}

func (r *fakeProfileRepo) ListLinks(_ *gorm.DB, profile *models.Profile) ([]models.SocialLink, error) {
	var out []models.SocialLink
	for _, link := range r.links[profile.AccountID] {
		out = append(out, *link)
	}
	return out, nil
}

func (r *fakeProfileRepo) AttachLink(_ *gorm.DB, profile *models.Profile, link *models.SocialLink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	r.links[profile.AccountID] = append(r.links[profile.AccountID], link)
	return nil
}

func (r *fakeProfileRepo) FindAttachedLink(_ *gorm.DB, profile *models.Profile, linkID string) (*models.SocialLink, error) {
	for _, link := range r.links[profile.AccountID] {
		if link.ID == linkID {
			return link, nil
		}
	}
	return nil, repositories.ErrSocialLinkNotFound
}

func (r *fakeProfileRepo) UpdateLink(_ *gorm.DB, link *models.SocialLink) error {
	for _, links := range r.links {
		for _, existing := range links {
			if existing.ID == link.ID {
				existing.SiteName = link.SiteName
				existing.URL = link.URL
				return nil
			}
		}
	}
	return repositories.ErrSocialLinkNotFound
}

func (r *fakeProfileRepo) RemoveLink(_ *gorm.DB, profile *models.Profile, link *models.SocialLink) error {
	links := r.links[profile.AccountID]
	for i, existing := range links {
		if existing.ID == link.ID {
			r.links[profile.AccountID] = append(links[:i], links[i+1:]...)
			return nil
		}
	}
	return repositories.ErrSocialLinkNotFound
}

type fakeRatingRepo struct {
	ratings     []*models.Rating
	profileRepo *fakeProfileRepo
}

func newFakeRatingRepo(profileRepo *fakeProfileRepo) *fakeRatingRepo {
	return &fakeRatingRepo{profileRepo: profileRepo}
}

func (r *fakeRatingRepo) Create(db *gorm.DB, rating *models.Rating) error {
	for _, existing := range r.ratings {
		if existing.RaterID == rating.RaterID && existing.RatedID == rating.RatedID {
			return repositories.ErrRatingExists
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	r.ratings = append(r.ratings, rating)

	average, _ := r.CalculateAverage(db, rating.RatedID)
	if profile, ok := r.profileRepo.profiles[rating.RatedID]; ok {
		profile.AverageRating = average
	}
	return nil
}

func (r *fakeRatingRepo) FindByPair(_ *gorm.DB, raterID, ratedID string) (*models.Rating, error) {
	for _, rating := range r.ratings {
		if rating.RaterID == raterID && rating.RatedID == ratedID {
			return rating, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRatingRepo) FindByRated(_ *gorm.DB, ratedID string) ([]models.Rating, error) {
	var out []models.Rating
	for _, rating := range r.ratings {
		if rating.RatedID == ratedID {
			out = append(out, *rating)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) CalculateAverage(_ *gorm.DB, ratedID string) (float64, error) {
	var sum, count float64
	for _, rating := range r.ratings {
		if rating.RatedID == ratedID {
			sum += float64(rating.Score)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

var errSMTPDown = errors.New("smtp connection refused")

// fakeEmailProvider записывает отправленные письма; failSends
// заставляет отправку падать.
type fakeEmailProvider struct {
	failSends         bool
	verificationsSent []string
	resetsSent        []string
	lastVerifyToken   string
	lastResetToken    string
	lastResetUIDB64   string
}

func (p *fakeEmailProvider) Send(_ *email.Email) error { return nil }

func (p *fakeEmailProvider) SendVerification(to, siteURL, username, token string) error {
	if p.failSends {
		return errSMTPDown
	}
	p.verificationsSent = append(p.verificationsSent, to)
	p.lastVerifyToken = token
	return nil
}

func (p *fakeEmailProvider) SendPasswordReset(to, domain, uidb64, token string) error {
	if p.failSends {
		return errSMTPDown
	}
	p.resetsSent = append(p.resetsSent, to)
	p.lastResetUIDB64 = uidb64
	p.lastResetToken = token
	return nil
}

func (p *fakeEmailProvider) Close() error { return nil }
