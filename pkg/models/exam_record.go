package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ExamRecord is a summary of one submitted practice exam
type ExamRecord struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	ExamName       string     `json:"exam_name" db:"exam_name"`
	SubjectName    string     `json:"subject_name" db:"subject_name"`
	TotalQuestions int        `json:"total_questions" db:"total_questions"`
	TotalCorrect   int        `json:"total_correct" db:"total_correct"`
	TotalWrong     int        `json:"total_wrong" db:"total_wrong"`
	TotalNet       float64    `json:"total_net" db:"total_net"`
	Topics         StringList `json:"topics" db:"topics"` // Topic names covered by the exam
	ExamDate       time.Time  `json:"exam_date" db:"exam_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// StringList is stored as a JSON array in a text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}
