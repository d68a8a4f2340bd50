package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse is the public shape of a user. The password hash is never
// exposed here.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Photo       string `json:"photo,omitempty"`
	Description string `json:"description,omitempty"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName.String,
		LastName:    u.LastName.String,
		Photo:       u.Photo.String,
		Description: u.Description.String,
	}
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type CaseResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Theme       string    `json:"theme"`
	Description string    `json:"description"`
	Cover       string    `json:"cover,omitempty"`
	Files       []string  `json:"files"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewCaseResponse(c *Case) CaseResponse {
	return CaseResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Title:       c.Title,
		Theme:       c.Theme,
		Description: c.Description,
		Cover:       c.Cover.String,
		Files:       c.Files,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

type ProcessedCaseResponse struct {
	ID            int64     `json:"id"`
	CaseID        int64     `json:"caseId"`
	UserID        int64     `json:"userId"`
	Title         string    `json:"title"`
	Theme         string    `json:"theme"`
	Description   string    `json:"description"`
	Cover         string    `json:"cover,omitempty"`
	Files         []string  `json:"files"`
	Status        string    `json:"status"`
	ExecutorID    int64     `json:"executorId"`
	ExecutorEmail string    `json:"executorEmail"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewProcessedCaseResponse(pc *ProcessedCase) ProcessedCaseResponse {
	return ProcessedCaseResponse{
		ID:            pc.ID,
		CaseID:        pc.CaseID,
		UserID:        pc.UserID,
		Title:         pc.Title,
		Theme:         pc.Theme,
		Description:   pc.Description,
		Cover:         pc.Cover.String,
		Files:         pc.Files,
		Status:        pc.Status,
		ExecutorID:    pc.ExecutorID,
		ExecutorEmail: pc.ExecutorEmail,
		CreatedAt:     pc.CreatedAt,
	}
}

type ProjectResponse struct {
	ID            int64     `json:"id"`
	CaseID        int64     `json:"caseId"`
	UserID        int64     `json:"userId"`
	Title         string    `json:"title"`
	Theme         string    `json:"theme"`
	Description   string    `json:"description"`
	Cover         string    `json:"cover,omitempty"`
	Files         []string  `json:"files"`
	Status        string    `json:"status"`
	ExecutorEmail string    `json:"executorEmail"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewProjectResponse(p *Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		CaseID:        p.CaseID,
		UserID:        p.UserID,
		Title:         p.Title,
		Theme:         p.Theme,
		Description:   p.Description,
		Cover:         p.Cover.String,
		Files:         p.Files,
		Status:        p.Status,
		ExecutorEmail: p.ExecutorEmail,
		CreatedAt:     p.CreatedAt,
	}
}

type ReviewResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	ReviewerID    int64     `json:"reviewerId"`
	ReviewerName  string    `json:"reviewerName,omitempty"`
	ReviewerPhoto string    `json:"reviewerPhoto,omitempty"`
	Text          string    `json:"text"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		ReviewerID:    r.ReviewerID,
		ReviewerName:  r.ReviewerName.String,
		ReviewerPhoto: r.ReviewerPhoto.String,
		Text:          r.Text,
		Rating:        r.Rating,
		CreatedAt:     r.CreatedAt,
	}
}

type AcceptCaseResponse struct {
	CaseID int64 `json:"caseId"`
}

type CompleteCaseResponse struct {
	ProjectID int64 `json:"projectId"`
}

type FileListResponse struct {
	Files []string `json:"files"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
