package model

// Question is one normalized quiz entry loaded from the CSV source
type Question struct {
	ID       int    `json:"id"`       // Source id column, or 1-based position when absent
	Question string `json:"question"` // Normalized question text
	Subject  string `json:"subject"`  // Normalized subject
}

// QuestionSubmission is the record POSTed when a question is annotated.
// It only lives for the duration of the request.
type QuestionSubmission struct {
	ID            int    `json:"id"`
	Question      string `json:"question"`
	Subject       string `json:"subject"`
	RelatedTopics string `json:"relatedTopics"`
}

// UnknownSubject is used by headerless parsing when a row has no subject column
const UnknownSubject = "Unknown"
