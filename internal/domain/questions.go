package domain

import "strings"

// Question IDs for the seven qualification steps, in funnel order.
const (
	QuestionSearchingFor  = "searchingFor"
	QuestionCareLevel     = "careLevel"
	QuestionMobilityLevel = "mobilityLevel"
	QuestionMemoryCare    = "memoryCare"
	QuestionMedicalNeeds  = "medicalNeeds"
	QuestionPriceRange    = "priceRange"
	QuestionTimeline      = "timeline"
)

// Option is a selectable answer for a question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is a single-choice qualification step.
type Question struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Options []Option `json:"options"`
}

// HasOption reports whether value is one of the question's defined options.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

var questions = []Question{
	{
		ID:    QuestionSearchingFor,
		Title: "Who are you helping place into care?",
		Options: []Option{
			{Value: "mom", Label: "My mom"},
			{Value: "dad", Label: "My dad"},
			{Value: "spouse", Label: "My spouse/partner"},
			{Value: "other", Label: "Another loved one"},
		},
	},
	{
		ID:    QuestionCareLevel,
		Title: "What level of daily support is needed?",
		Options: []Option{
			{Value: "minimal", Label: "Minimal - reminders & light assistance"},
			{Value: "moderate", Label: "Moderate - help with several ADLs"},
			{Value: "extensive", Label: "Extensive - full help with most daily activities"},
			{Value: "total", Label: "Total - full assistance & monitoring"},
		},
	},
	{
		ID:    QuestionMobilityLevel,
		Title: "What best describes their mobility?",
		Options: []Option{
			{Value: "fully-mobile", Label: "Fully mobile"},
			{Value: "walker", Label: "Uses walker or cane"},
			{Value: "wheelchair", Label: "Wheelchair user"},
			{Value: "bedbound", Label: "Bedbound or very limited mobility"},
		},
	},
	{
		ID:    QuestionMemoryCare,
		Title: "Is memory care or dementia support required?",
		Options: []Option{
			{Value: "no", Label: "No memory care needed"},
			{Value: "mild", Label: "Mild memory changes"},
			{Value: "moderate", Label: "Moderate dementia/Alzheimer's"},
			{Value: "severe", Label: "Severe memory care needs"},
		},
	},
	{
		ID:    QuestionMedicalNeeds,
		Title: "Any medical or behavioral considerations?",
		Options: []Option{
			{Value: "standard", Label: "Standard medication management"},
			{Value: "fall-risk", Label: "High fall risk / safety monitoring"},
			{Value: "complex", Label: "Complex conditions (e.g. diabetes, hospice)"},
			{Value: "behavioral", Label: "Behavioral / mood-related support"},
		},
	},
	{
		ID:    QuestionPriceRange,
		Title: "What monthly budget range are you planning for?",
		Options: []Option{
			{Value: "under-3000", Label: "Under $3,000 per month"},
			{Value: "3000-5000", Label: "$3,000 - $5,000 per month"},
			{Value: "5000-7000", Label: "$5,000 - $7,000 per month"},
			{Value: "over-7000", Label: "Over $7,000 per month"},
		},
	},
	{
		ID:    QuestionTimeline,
		Title: "How soon are you hoping to move in?",
		Options: []Option{
			{Value: "immediate", Label: "Immediately (within 30 days)"},
			{Value: "1-3months", Label: "1-3 months"},
			{Value: "3-6months", Label: "3-6 months"},
			{Value: "6plus", Label: "6+ months / just planning"},
		},
	},
}

// Questions returns the fixed funnel catalog in step order.
func Questions() []Question {
	return questions
}

// QuestionCount is the number of qualification steps; the contact step sits
// one past the last question.
func QuestionCount() int {
	return len(questions)
}

// OptionLabel resolves the display label for a stored answer value. Unknown
// values fall back to title-casing the raw value so old rows still render.
func OptionLabel(questionID, value string) string {
	for _, q := range questions {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value == value {
				return opt.Label
			}
		}
	}
	return titleCase(value)
}

func titleCase(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
