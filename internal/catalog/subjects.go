package catalog

// Subject identifies an academic subject, location or event where a stamp can
// be earned. The engine treats subjects as opaque string keys.
type Subject = string

// Academic subjects.
const (
	SubjectMath    Subject = "Math"
	SubjectScience Subject = "Science"
	SubjectEnglish Subject = "English"
	SubjectArt     Subject = "Art"
	SubjectMusic   Subject = "Music"
	SubjectSport   Subject = "Sport"
)

// Locations and events.
const (
	SubjectPlayground Subject = "Playground"
	SubjectAssembly   Subject = "Assembly"
	SubjectExcursions Subject = "Excursions"
	SubjectLibrary    Subject = "Library"
)

// Subjects lists every subject and location in display order. The full
// passport grid is Subjects x CoreValues.
var Subjects = []Subject{
	SubjectMath,
	SubjectScience,
	SubjectEnglish,
	SubjectArt,
	SubjectMusic,
	SubjectSport,
	SubjectPlayground,
	SubjectAssembly,
	SubjectExcursions,
	SubjectLibrary,
}

// Subject groupings used by the head-heart-hand achievement.
var (
	AcademicSubjects = []Subject{SubjectMath, SubjectScience, SubjectEnglish, SubjectLibrary}
	CreativeSubjects = []Subject{SubjectArt, SubjectMusic}
	ActiveSubjects   = []Subject{SubjectSport, SubjectPlayground, SubjectExcursions}
)

// IsSubject reports whether name is part of the subject catalog.
func IsSubject(name string) bool {
	for _, s := range Subjects {
		if s == name {
			return true
		}
	}
	return false
}
