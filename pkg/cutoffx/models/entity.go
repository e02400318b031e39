package models

// College is a persisted college row.
type College struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
	Type  string `json:"type,omitempty"`
	City  string `json:"city,omitempty"`
}

// Course is a persisted course row scoped to a college.
type Course struct {
	ID         int64  `json:"id"`
	CollegeID  int64  `json:"college_id"`
	CourseName string `json:"course_name"`
	Seats      int    `json:"seats"`
}
