package domain

// Country is one row of the authoritative NOC reference table.
type Country struct {
	Code     string
	Name     string
	NameLong string
	Tag      string
	Note     string
}

// Sport is a discipline merged from the events and schedules extracts.
// Fields are filled first-non-empty-wins; later sources never override.
type Sport struct {
	Code string
	Name string
	Tag  string
	URL  string
}

// FillName sets the name if it is still empty.
func (s *Sport) FillName(name string) {
	if name != "" && s.Name == "" {
		s.Name = name
	}
}

// FillTag sets the tag if it is still empty.
func (s *Sport) FillTag(tag string) {
	if tag != "" && s.Tag == "" {
		s.Tag = tag
	}
}

// FillURL sets the url if it is still empty.
func (s *Sport) FillURL(url string) {
	if url != "" && s.URL == "" {
		s.URL = url
	}
}

// Venue accumulates identity and the set of disciplines hosted across
// every schedule row that references it.
type Venue struct {
	Code     string
	Name     string
	Location string
	Tag      string
	URL      string
	Sports   map[string]struct{}
}

// NewVenue creates a venue accumulator for the given code.
func NewVenue(code, name, location string) *Venue {
	return &Venue{
		Code:     code,
		Name:     name,
		Location: location,
		Sports:   make(map[string]struct{}),
	}
}

// AddSport records a discipline hosted at the venue. Empty codes are ignored.
func (v *Venue) AddSport(code string) {
	if code != "" {
		v.Sports[code] = struct{}{}
	}
}

// EventKey indexes an event by the lowercase discipline and event names,
// the only identity medallist rows carry.
type EventKey struct {
	Discipline string
	Event      string
}

// Event accumulates identity for one event code across every result row
// that references it. Name-like fields are first-non-empty-wins; stages
// and venues are set unions.
type Event struct {
	Code      string
	Name      string
	Gender    string
	SportName string
	SportCode string
	Stages    map[string]struct{}
	Venues    map[string]struct{}
	HasMedal  bool
}

// NewEvent creates an empty event accumulator for the given code.
func NewEvent(code string) *Event {
	return &Event{
		Code:   code,
		Stages: make(map[string]struct{}),
		Venues: make(map[string]struct{}),
	}
}

// Absorb folds one result row's view of the event into the accumulator.
func (e *Event) Absorb(name, gender, sportName, sportCode, stage, venueCode string) {
	if name != "" && e.Name == "" {
		e.Name = name
	}
	if gender != "" && e.Gender == "" {
		e.Gender = gender
	}
	if sportName != "" && e.SportName == "" {
		e.SportName = sportName
	}
	if sportCode != "" && e.SportCode == "" {
		e.SportCode = sportCode
	}
	if stage != "" {
		e.Stages[stage] = struct{}{}
	}
	if venueCode != "" {
		e.Venues[venueCode] = struct{}{}
	}
}

// Result is one participant's outcome in one competition stage of an event.
// ParticipantCode names either an athlete or a team, never both.
type Result struct {
	ParticipantCode string
	EventCode       string
	StageCode       string
	EventStage      string
	Stage           string
	Date            string
	Result          string
	ResultType      string
	ResultStatus    string
	ResultDiff      string
	Bib             string
	Rank            string
	CountryCode     string
}
