package model

// Event is an upcoming school event shown on the parent dashboard.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// Activity is one line of the school dashboard timeline.
type Activity struct {
	Time    string `json:"time"`
	Action  string `json:"action"`
	Details string `json:"details"`
}

// MessageStats are the message counters of the school dashboard.
type MessageStats struct {
	Total      int `json:"total"`
	Read       int `json:"read"`
	General    int `json:"general"`
	Individual int `json:"individual"`
}

// UserCount holds registered parent and student numbers.
type UserCount struct {
	TotalParents  int `json:"total_parents"`
	ActiveParents int `json:"active_parents"`
	TotalStudents int `json:"total_students"`
}

// SchoolStats groups everything the school dashboard cards need.
type SchoolStats struct {
	Messages MessageStats `json:"messages"`
	Users    UserCount    `json:"users"`
}

// ParentOverview holds the parent dashboard figures that are not derived
// from the inbox itself.
type ParentOverview struct {
	Name          string `json:"name"`
	Attendance    int    `json:"attendance"` // percent, last month
	Notifications int    `json:"notifications"`
}

// Recipient is a parent that can be addressed by an individual message.
type Recipient struct {
	Email string `json:"email"`
	Label string `json:"label"`
}
