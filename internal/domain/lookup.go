package domain

// LookupResult is one dictionary entry as shown to the user.
// It is built fresh for every successful lookup and never stored.
type LookupResult struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning groups definitions sharing one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition is a single sense with an optional usage example.
type Definition struct {
	Text    string `json:"definition"`
	Example string `json:"example,omitempty"`
}

// HasPhonetic reports whether a phonetic spelling is present.
func (r *LookupResult) HasPhonetic() bool { return r.Phonetic != "" }

// HasExample reports whether the definition carries a usage example.
func (d Definition) HasExample() bool { return d.Example != "" }
