package domain

import "time"

// DefaultSource tags leads that arrive through the prelander funnel.
const DefaultSource = "prelander"

// Lead is one submitted qualification record. It is insert-only: once
// persisted it is never mutated.
type Lead struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	SearchingFor  string    `json:"searchingFor"`
	CareLevel     string    `json:"careLevel"`
	MobilityLevel string    `json:"mobilityLevel"`
	MemoryCare    string    `json:"memoryCare"`
	MedicalNeeds  string    `json:"medicalNeeds"`
	PriceRange    string    `json:"priceRange"`
	Timeline      string    `json:"timeline"`
	Source        string    `json:"source"`
	SubmittedAt   time.Time `json:"submittedAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Draft holds the in-progress answers of one funnel session. It lives only in
// the draft store and is discarded on submission or TTL expiry.
type Draft struct {
	SearchingFor  string `json:"searchingFor,omitempty"`
	CareLevel     string `json:"careLevel,omitempty"`
	MobilityLevel string `json:"mobilityLevel,omitempty"`
	MemoryCare    string `json:"memoryCare,omitempty"`
	MedicalNeeds  string `json:"medicalNeeds,omitempty"`
	PriceRange    string `json:"priceRange,omitempty"`
	Timeline      string `json:"timeline,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// Answer returns the stored value for a qualification question.
func (d Draft) Answer(questionID string) (string, bool) {
	switch questionID {
	case QuestionSearchingFor:
		return d.SearchingFor, true
	case QuestionCareLevel:
		return d.CareLevel, true
	case QuestionMobilityLevel:
		return d.MobilityLevel, true
	case QuestionMemoryCare:
		return d.MemoryCare, true
	case QuestionMedicalNeeds:
		return d.MedicalNeeds, true
	case QuestionPriceRange:
		return d.PriceRange, true
	case QuestionTimeline:
		return d.Timeline, true
	}
	return "", false
}

// SetAnswer writes the value for a qualification question.
func (d *Draft) SetAnswer(questionID, value string) error {
	switch questionID {
	case QuestionSearchingFor:
		d.SearchingFor = value
	case QuestionCareLevel:
		d.CareLevel = value
	case QuestionMobilityLevel:
		d.MobilityLevel = value
	case QuestionMemoryCare:
		d.MemoryCare = value
	case QuestionMedicalNeeds:
		d.MedicalNeeds = value
	case QuestionPriceRange:
		d.PriceRange = value
	case QuestionTimeline:
		d.Timeline = value
	default:
		return ErrQuestionNotFound
	}
	return nil
}

// SetContact writes one of the contact fields. Only name, email and phone are
// valid; anything else is rejected.
func (d *Draft) SetContact(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	default:
		return ErrContactFieldNotFound
	}
	return nil
}

// Fields returns the non-empty draft fields in funnel order, as appended to
// the redirect query string.
func (d Draft) Fields() []Field {
	all := []Field{
		{"searchingFor", d.SearchingFor},
		{"careLevel", d.CareLevel},
		{"mobilityLevel", d.MobilityLevel},
		{"memoryCare", d.MemoryCare},
		{"medicalNeeds", d.MedicalNeeds},
		{"priceRange", d.PriceRange},
		{"timeline", d.Timeline},
		{"name", d.Name},
		{"email", d.Email},
		{"phone", d.Phone},
	}
	fields := make([]Field, 0, len(all))
	for _, f := range all {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// Field is a named draft value.
type Field struct {
	Key   string
	Value string
}

// AdminUser is a dashboard operator account.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// AdminSession is a server-side login session for the dashboard.
type AdminSession struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s AdminSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
