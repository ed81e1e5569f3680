package model

import "time"

// Candidate represents a registered exam candidate.
type Candidate struct {
	ID            int       `json:"id"`
	CandidateCode string    `json:"candidate_code"` // e.g. PVM-2025-007
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Institution   string    `json:"institution"`
	Level         Level     `json:"level"`
	CourseOfStudy string    `json:"course_of_study"`
	PhoneNumber   string    `json:"phone_number"`
	RegisteredAt  time.Time `json:"registered_at"`
	HasTakenExam  bool      `json:"has_taken_exam"`
}

// RegisterCandidateRequest is the payload for candidate registration.
type RegisterCandidateRequest struct {
	FullName      string `json:"full_name" binding:"required,min=2,max=120"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Institution   string `json:"institution" binding:"required,min=2,max=160"`
	Level         Level  `json:"level" binding:"required,oneof=100L 200L"`
	CourseOfStudy string `json:"course_of_study" binding:"required,min=2,max=160"`
	PhoneNumber   string `json:"phone_number" binding:"required,min=7,max=20"`
}

// CandidateLoginRequest is the payload for candidate authentication.
type CandidateLoginRequest struct {
	CandidateCode string `json:"candidate_code" binding:"required,min=8,max=20"`
	Email         string `json:"email" binding:"required,email,max=255"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}
