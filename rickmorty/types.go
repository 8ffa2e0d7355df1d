package rickmorty

import (
	"strconv"
	"strings"
	"time"
)

// Status represents whether a character is alive
type Status string

const (
	StatusAlive   Status = "Alive"
	StatusDead    Status = "Dead"
	StatusUnknown Status = "unknown"
)

// IsKnown reports whether the status is Alive or Dead
func (s Status) IsKnown() bool {
	return s == StatusAlive || s == StatusDead
}

// Gender represents a character's gender
type Gender string

const (
	GenderMale       Gender = "Male"
	GenderFemale     Gender = "Female"
	GenderGenderless Gender = "Genderless"
	GenderUnknown    Gender = "unknown"
)

// Symbol returns a single-rune marker for the gender
func (g Gender) Symbol() string {
	switch strings.ToLower(string(g)) {
	case "male":
		return "♂"
	case "female":
		return "♀"
	case "genderless":
		return "⚧"
	default:
		return "?"
	}
}

// Place is a named location reference (origin or last known location)
type Place struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// IsUnknown reports whether the API has no name for the place
func (p Place) IsUnknown() bool {
	return p.Name == "" || strings.EqualFold(p.Name, "unknown")
}

// Character represents a single character returned by the API
type Character struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Status   Status    `json:"status"`
	Species  string    `json:"species"`
	Type     string    `json:"type"`
	Gender   Gender    `json:"gender"`
	Origin   Place     `json:"origin"`
	Location Place     `json:"location"`
	Image    string    `json:"image"`
	Episode  []string  `json:"episode"`
	URL      string    `json:"url"`
	Created  time.Time `json:"created"`
}

// EpisodeCount returns the number of episodes the character appears in
func (c *Character) EpisodeCount() int {
	return len(c.Episode)
}

// EpisodeNumbers extracts the numeric episode ids from the episode URLs
func (c *Character) EpisodeNumbers() []int {
	numbers := make([]int, 0, len(c.Episode))
	for _, ep := range c.Episode {
		idx := strings.LastIndexByte(ep, '/')
		n, err := strconv.Atoi(ep[idx+1:])
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

// PageInfo contains pagination information
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// CharacterPage is the paginated envelope returned by the character endpoints
type CharacterPage struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// Page is one fetched page of characters plus the cursor of the page after it.
// An empty Next means there are no further pages.
type Page struct {
	Items []Character
	Next  string
	Info  PageInfo
}

// HasNext checks if there are more pages to fetch
func (p *Page) HasNext() bool {
	return p.Next != ""
}

func (cp *CharacterPage) toPage() *Page {
	items := cp.Results
	if items == nil {
		items = []Character{}
	}
	return &Page{
		Items: items,
		Next:  cp.Info.Next,
		Info:  cp.Info,
	}
}

// errorPayload is the body the API sends alongside error statuses
type errorPayload struct {
	Error string `json:"error"`
}
