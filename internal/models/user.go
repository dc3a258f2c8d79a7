package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultGradeLevel  = "Grade 8"
	DefaultDisplayName = "Student"

	maxFieldRunes = 500
)

var (
	ErrMissingCelebrity = errors.New("favored celebrity is required")
	ErrMissingDreamJob  = errors.New("dream job is required")
	ErrFieldTooLong     = errors.New("onboarding field is too long")
)

// 학생 프로필, 온보딩 완료 시 한 번 생성되고 이후 변경되지 않음
type UserProfile struct {
	UID               string `json:"uid" firestore:"uid"`
	DisplayName       string `json:"displayName" firestore:"display_name"`
	GradeLevel        string `json:"gradeLevel" firestore:"grade_level"`
	FavoredCelebrity  string `json:"favoredCelebrity" firestore:"favored_celebrity"`
	DreamJob          string `json:"dreamJob" firestore:"dream_job"`
	Hobby             string `json:"hobby" firestore:"hobby"`
	Bio               string `json:"bio" firestore:"bio"`
	IsProfileComplete bool   `json:"isProfileComplete" firestore:"is_profile_complete"`
}

// 온보딩 폼 입력값
type OnboardingData struct {
	GradeLevel       string `json:"gradeLevel" example:"Grade 8"`
	FavoredCelebrity string `json:"favoredCelebrity" example:"MrBeast"`
	DreamJob         string `json:"dreamJob" example:"Astronaut"`
	Hobby            string `json:"hobby" example:"Gaming"`
	Bio              string `json:"bio" example:"I like math"`
}

// Normalize trims every field and fills in the default grade.
func (d OnboardingData) Normalize() OnboardingData {
	d.GradeLevel = strings.TrimSpace(d.GradeLevel)
	d.FavoredCelebrity = strings.TrimSpace(d.FavoredCelebrity)
	d.DreamJob = strings.TrimSpace(d.DreamJob)
	d.Hobby = strings.TrimSpace(d.Hobby)
	d.Bio = strings.TrimSpace(d.Bio)
	if d.GradeLevel == "" {
		d.GradeLevel = DefaultGradeLevel
	}
	return d
}

// Validate expects normalized data.
func (d OnboardingData) Validate() error {
	if d.FavoredCelebrity == "" {
		return ErrMissingCelebrity
	}
	if d.DreamJob == "" {
		return ErrMissingDreamJob
	}
	for _, v := range []string{d.GradeLevel, d.FavoredCelebrity, d.DreamJob, d.Hobby, d.Bio} {
		if utf8.RuneCountInString(v) > maxFieldRunes {
			return ErrFieldTooLong
		}
	}
	return nil
}

// NewUserProfile consumes onboarding data and builds a complete profile.
func NewUserProfile(d OnboardingData) UserProfile {
	return UserProfile{
		UID:               "demo-user-" + uuid.NewString(),
		DisplayName:       DefaultDisplayName,
		GradeLevel:        d.GradeLevel,
		FavoredCelebrity:  d.FavoredCelebrity,
		DreamJob:          d.DreamJob,
		Hobby:             d.Hobby,
		Bio:               d.Bio,
		IsProfileComplete: true,
	}
}
