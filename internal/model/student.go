package model

import "time"

// Student is the public profile of a registered student.
// Its ID equals the ID of the owning User.
type Student struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Major          string
	GraduationYear int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StudentDto is the API representation of a Student.
type StudentDto struct {
	StudentID      string `json:"studentId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Major          string `json:"major"`
	GraduationYear int    `json:"graduationYear"`
}

// ToDto converts the profile to its API shape.
func (s Student) ToDto() StudentDto {
	return StudentDto{
		StudentID:      s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Major:          s.Major,
		GraduationYear: s.GraduationYear,
	}
}
