package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"landmarket_backend/internal/models"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage хранит "файлы" в памяти
type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(_ context.Context, path string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *memStorage) GetURL(path string) string {
	return "/media/" + path
}

type profileFixture struct {
	service  ProfileService
	profiles *fakeProfileRepo
	ratings  *fakeRatingRepo
	storage  *memStorage
}

func newProfileFixture() *profileFixture {
	profiles := newFakeProfileRepo()
	ratings := newFakeRatingRepo(profiles)
	store := newMemStorage()
	// Нормализация картинок в юнит-тестах выключена (nil) - здесь
	// проверяется логика сервиса, не кодеки
	return &profileFixture{
		service:  NewProfileService(profiles, ratings, store, nil),
		profiles: profiles,
		ratings:  ratings,
		storage:  store,
	}
}

func createProfileRequest() *dto.CreateProfileRequest {
	return &dto.CreateProfileRequest{
		FirstName: "bob",
		LastName:  "smith",
		Location:  "Almaty",
	}
}

func TestCapitalizeName(t *testing.T) {
	cases := map[string]string{
		"bob":      "Bob",
		"bOB":      "Bob",
		"Bob":      "Bob",
		"McDonald": "McDonald",
		"o'brien":  "O'brien",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, capitalizeName(in), "input %q", in)
	}
}

func TestImagePath_Format(t *testing.T) {
	path := imagePath("avatar.png")

	assert.True(t, strings.HasPrefix(path, "profile_images/profile_"), path)
	assert.True(t, strings.HasSuffix(path, "_avatar.png"), path)
	// Два вызова не совпадают
	assert.NotEqual(t, path, imagePath("avatar.png"))
}

func TestImagePath_StripsDirectories(t *testing.T) {
	path := imagePath("../../etc/passwd")
	assert.NotContains(t, path, "..")
	assert.True(t, strings.HasSuffix(path, "_passwd"), path)
}

func TestCreateProfile_CapitalizesNames(t *testing.T) {
	f := newProfileFixture()

	profile, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Bob", profile.FirstName)
	assert.Equal(t, "Smith", profile.LastName)
	assert.Equal(t, "acc-1", profile.AccountID)
}

func TestCreateProfile_Duplicate(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	_, err = f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	assert.ErrorIs(t, err, apperrors.ErrProfileAlreadyExists)
}

func TestCreateProfile_PicksUpExistingRatings(t *testing.T) {
	f := newProfileFixture()

	// Оценки пришли до создания профиля
	require.NoError(t, f.ratings.Create(nil, &models.Rating{RaterID: "r1", RatedID: "acc-1", Score: 4}))
	require.NoError(t, f.ratings.Create(nil, &models.Rating{RaterID: "r2", RatedID: "acc-1", Score: 2}))

	profile, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, profile.AverageRating, 0.001)
}

func TestCreateProfile_SavesImage(t *testing.T) {
	f := newProfileFixture()

	image := &ImageUpload{Filename: "avatar.png", Reader: strings.NewReader("png-bytes")}
	profile, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), image)
	require.NoError(t, err)

	require.NotEmpty(t, profile.ImagePath)
	assert.Equal(t, "png-bytes", string(f.storage.files[profile.ImagePath]))
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.GetProfile(nil, "acc-1")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	newLocation := "Astana"
	updated, err := f.service.UpdateProfile(context.Background(), nil, "acc-1", "acc-1", &dto.UpdateProfileRequest{
		Location: &newLocation,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Astana", updated.Location)
	// Непереданные поля не тронуты
	assert.Equal(t, "Bob", updated.FirstName)
}

func TestUpdateProfile_NotOwner(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	loc := "Astana"
	_, err = f.service.UpdateProfile(context.Background(), nil, "acc-2", "acc-1", &dto.UpdateProfileRequest{
		Location: &loc,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotProfileOwner)
}

func TestUpdateProfile_ReplacesImage(t *testing.T) {
	f := newProfileFixture()

	first := &ImageUpload{Filename: "old.png", Reader: strings.NewReader("old")}
	profile, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), first)
	require.NoError(t, err)
	oldPath := profile.ImagePath

	second := &ImageUpload{Filename: "new.png", Reader: strings.NewReader("new")}
	updated, err := f.service.UpdateProfile(context.Background(), nil, "acc-1", "acc-1", &dto.UpdateProfileRequest{}, second)
	require.NoError(t, err)

	assert.NotEqual(t, oldPath, updated.ImagePath)
	_, stillThere := f.storage.files[oldPath]
	assert.False(t, stillThere, "старый файл должен быть удален")
}

func TestDeleteProfile(t *testing.T) {
	f := newProfileFixture()

	image := &ImageUpload{Filename: "avatar.png", Reader: strings.NewReader("png")}
	profile, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), image)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteProfile(context.Background(), nil, "acc-1", "acc-1"))

	_, err = f.service.GetProfile(nil, "acc-1")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	_, stillThere := f.storage.files[profile.ImagePath]
	assert.False(t, stillThere)
}

func TestDeleteProfile_NotOwner(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	err = f.service.DeleteProfile(context.Background(), nil, "acc-2", "acc-1")
	assert.ErrorIs(t, err, apperrors.ErrNotProfileOwner)
}

func TestSocialLinks_CRUD(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	link, err := f.service.AddSocialLink(nil, "acc-1", "acc-1", &dto.SocialLinkRequest{
		SiteName: "Instagram",
		URL:      "https://instagram.com/bob",
	})
	require.NoError(t, err)
	require.NotEmpty(t, link.ID)

	links, err := f.service.ListSocialLinks(nil, "acc-1")
	require.NoError(t, err)
	assert.Len(t, links, 1)

	newURL := "https://instagram.com/bob_smith"
	updated, err := f.service.UpdateSocialLink(nil, "acc-1", "acc-1", &dto.UpdateSocialLinkRequest{
		SocialLinkID: link.ID,
		URL:          &newURL,
	})
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.URL)
	assert.Equal(t, "Instagram", updated.SiteName)

	err = f.service.DeleteSocialLink(nil, "acc-1", "acc-1", &dto.DeleteSocialLinkRequest{
		SocialLinkID: link.ID,
	})
	require.NoError(t, err)

	links, err = f.service.ListSocialLinks(nil, "acc-1")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestSocialLinks_RequireProfile(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.AddSocialLink(nil, "acc-1", "acc-1", &dto.SocialLinkRequest{
		SiteName: "Instagram",
		URL:      "https://instagram.com/bob",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoProfileForSocial)
}

func TestSocialLinks_UnknownLink(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	site := "Twitter"
	_, err = f.service.UpdateSocialLink(nil, "acc-1", "acc-1", &dto.UpdateSocialLinkRequest{
		SocialLinkID: "no-such-link",
		SiteName:     &site,
	})
	assert.ErrorIs(t, err, apperrors.ErrSocialLinkNotFound)
}

func TestSocialLinks_NotOwner(t *testing.T) {
	f := newProfileFixture()

	_, err := f.service.CreateProfile(context.Background(), nil, "acc-1", createProfileRequest(), nil)
	require.NoError(t, err)

	_, err = f.service.AddSocialLink(nil, "acc-2", "acc-1", &dto.SocialLinkRequest{
		SiteName: "Instagram",
		URL:      "https://instagram.com/bob",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotProfileOwner)
}
