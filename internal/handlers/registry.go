package handlers

// AppHandlers - все HTTP-обработчики приложения в одном месте,
// чтобы роутер получал единую зависимость
type AppHandlers struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Rating  *RatingHandler
}

func NewAppHandlers(
	auth *AuthHandler,
	profile *ProfileHandler,
	rating *RatingHandler,
) *AppHandlers {
	return &AppHandlers{
		Auth:    auth,
		Profile: profile,
		Rating:  rating,
	}
}
