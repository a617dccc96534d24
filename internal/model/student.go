package model

// FeePerCourse is the flat tuition charge per enrolled course.
const FeePerCourse = 100

// Student represents one registered student and their fee state.
// The JSON field names match the persisted students file layout.
type Student struct {
	Name    string   `json:"name"`
	Class   string   `json:"class"`
	RollNo  string   `json:"rollNo"`
	Courses []string `json:"courses"`
	Fees    int      `json:"fees"`
	FeePaid bool     `json:"feePaid"`
}

// CourseFees returns the tuition owed for n enrolled courses.
func CourseFees(n int) int {
	return n * FeePerCourse
}

// AddStudentRequest is the payload for registering a new student.
type AddStudentRequest struct {
	Name    string   `json:"name" validate:"required,alphaspace"`
	Class   string   `json:"class" validate:"required,number"`
	RollNo  string   `json:"rollNo" validate:"required,number,len=5"`
	Courses []string `json:"courses" validate:"dive,required"`
}
