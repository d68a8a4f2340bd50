package models

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
}

type AcceptCaseRequest struct {
	ExecutorID int64 `json:"executorId"`
}

// CompleteCaseRequest closes a processed case. Unset fields default to the
// processed case's stored values.
type CompleteCaseRequest struct {
	UserID      int64   `json:"userId"`
	Title       *string `json:"title"`
	Theme       *string `json:"theme"`
	Description *string `json:"description"`
}

type CreateReviewRequest struct {
	UserID int64  `json:"userId"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}
